package sqlkit

import (
	"strings"
)

// CharacterSet is one of the character sets known to MySQL. The zero value means "not set".
type CharacterSet string

const (
	Armscii8 CharacterSet = "ARMSCII8"
	ASCII    CharacterSet = "ASCII"
	Big5     CharacterSet = "BIG5"
	Binary   CharacterSet = "BINARY"
	Cp1250   CharacterSet = "CP1250"
	Cp1251   CharacterSet = "CP1251"
	Cp1256   CharacterSet = "CP1256"
	Cp1257   CharacterSet = "CP1257"
	Cp850    CharacterSet = "CP850"
	Cp852    CharacterSet = "CP852"
	Cp866    CharacterSet = "CP866"
	Cp932    CharacterSet = "CP932"
	Dec8     CharacterSet = "DEC8"
	EucJPms  CharacterSet = "EUCJPMS"
	EucKR    CharacterSet = "EUCKR"
	GB18030  CharacterSet = "GB18030"
	GB2312   CharacterSet = "GB2312"
	GBK      CharacterSet = "GBK"
	Geostd8  CharacterSet = "GEOSTD8"
	Greek    CharacterSet = "GREEK"
	Hebrew   CharacterSet = "HEBREW"
	HP8      CharacterSet = "HP8"
	Keybcs2  CharacterSet = "KEYBCS2"
	KOI8R    CharacterSet = "KOI8R"
	KOI8U    CharacterSet = "KOI8U"
	Latin1   CharacterSet = "LATIN1"
	Latin2   CharacterSet = "LATIN2"
	Latin5   CharacterSet = "LATIN5"
	Latin7   CharacterSet = "LATIN7"
	MacCE    CharacterSet = "MACCE"
	MacRoman CharacterSet = "MACROMAN"
	SJIS     CharacterSet = "SJIS"
	Swe7     CharacterSet = "SWE7"
	TIS620   CharacterSet = "TIS620"
	UCS2     CharacterSet = "UCS2"
	UJIS     CharacterSet = "UJIS"
	UTF16    CharacterSet = "UTF16"
	UTF16LE  CharacterSet = "UTF16LE"
	UTF32    CharacterSet = "UTF32"
	UTF8     CharacterSet = "UTF8"
	UTF8MB3  CharacterSet = "UTF8MB3"
	UTF8MB4  CharacterSet = "UTF8MB4"
)

// postgresEncodings only covers sets with a server encoding of the same repertoire.
var postgresEncodings = map[CharacterSet]string{
	ASCII:   "SQL_ASCII",
	Big5:    "BIG5",
	Cp1250:  "WIN1250",
	Cp1251:  "WIN1251",
	Cp1256:  "WIN1256",
	Cp1257:  "WIN1257",
	Cp866:   "WIN866",
	EucKR:   "EUC_KR",
	GB18030: "GB18030",
	GB2312:  "EUC_CN",
	GBK:     "GBK",
	Greek:   "ISO_8859_7",
	Hebrew:  "ISO_8859_8",
	KOI8R:   "KOI8R",
	KOI8U:   "KOI8U",
	Latin1:  "LATIN1",
	Latin2:  "LATIN2",
	Latin5:  "LATIN5",
	Latin7:  "LATIN7",
	SJIS:    "SJIS",
	TIS620:  "WIN874",
	UJIS:    "EUC_JP",
	UTF8:    "UTF8",
	UTF8MB3: "UTF8",
	UTF8MB4: "UTF8",
}

func (cs CharacterSet) IsZero() bool {
	return cs == ""
}

// MySQLName is the name MySQL and MariaDB use for the set.
func (cs CharacterSet) MySQLName() string {
	return strings.ToLower(string(cs))
}

// PostgresName returns the PostgreSQL encoding, if there is one.
func (cs CharacterSet) PostgresName() (string, bool) {
	name, ok := postgresEncodings[cs]
	return name, ok
}

// For returns the character set name to emit for d.
func (cs CharacterSet) For(d Dialect) (string, error) {
	switch {
	case cs.IsZero():
		return "", missingField("character set is empty")
	case d.isMySQLFamily():
		return cs.MySQLName(), nil
	case d == PostgreSQL:
		if name, ok := cs.PostgresName(); ok {
			return name, nil
		}
		return "", notSupported("character set %s has no PostgreSQL encoding", cs.MySQLName())
	}
	return "", notSupported("character set selection is not available on dialect %s", d)
}
