package sqlkit

import (
	"strings"

	"github.com/samber/lo"
)

// Group renders GROUP BY keys and an optional HAVING clause.
type Group struct {
	Keys       []string
	Conditions Conditions
}

func NewGroup(keys ...string) *Group {
	return &Group{Keys: keys}
}

func (g *Group) Key(keys ...string) *Group {
	g.Keys = append(g.Keys, keys...)
	return g
}

func (g *Group) Having(conditions ...*Condition) *Group {
	g.Conditions = append(g.Conditions, conditions...)
	return g
}

// Render fails on an empty group rather than emitting a dangling GROUP BY.
func (g *Group) Render(rc *RenderContext) (string, error) {
	keys := lo.Filter(g.Keys, func(k string, _ int) bool { return strings.TrimSpace(k) != "" })
	having := g.Conditions.compact()
	if len(keys) == 0 && len(having) == 0 {
		return "", missingField("group has neither keys nor conditions")
	}
	var parts []string
	if len(keys) > 0 {
		parts = append(parts, "GROUP BY "+strings.Join(keys, ", "))
	}
	if len(having) > 0 {
		s, err := having.Render(rc)
		if err != nil {
			return "", err
		}
		parts = append(parts, "HAVING "+s)
	}
	return strings.Join(parts, " "), nil
}

func (g *Group) SQL(d Dialect) (string, error) {
	return g.Render(NewRenderContext(d))
}
