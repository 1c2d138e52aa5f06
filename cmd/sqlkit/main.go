package main

import (
	"context"
	"fmt"
	"os"

	"github.com/guregu/null/v5"
	"github.com/iamdanielyin/sqlkit"
	_ "github.com/joho/godotenv/autoload"
	"github.com/sirupsen/logrus"
)

type Org struct {
	ID   uint   `sqlkit:"type=INTEGER;incr"`
	Code string `sqlkit:"type=VARCHAR(64);unique"`
	Name string `sqlkit:"comment=display name"`
}

type UserDept struct {
	UserID int64 `sqlkit:"pk"`
	DeptID int64 `sqlkit:"pk"`
	IsMain null.Bool
}

func main() {
	log := sqlkit.Logger()
	if os.Getenv("SQLKIT_DEBUG") != "" {
		log.SetLevel(logrus.DebugLevel)
	}

	org, err := sqlkit.ParseTable(&Org{})
	if err != nil {
		log.Fatal(err)
	}
	userDept, err := sqlkit.ParseTable(&UserDept{})
	if err != nil {
		log.Fatal(err)
	}
	for _, d := range sqlkit.Dialects {
		fmt.Printf("-- %s\n", d)
		for _, p := range []sqlkit.QueryProvider{
			sqlkit.NewTableCreate(org).IfNotExists(),
			sqlkit.NewTableCreate(userDept).IfNotExists(),
			sqlkit.InsertInto(org.Name).Columns("code", "name").Values("acme", "Acme Inc.").OrUpdate("code"),
			sqlkit.SelectFrom(org.Name, "id", "name").
				Where(sqlkit.NewCondition("code", sqlkit.Like, "ac%")).
				OrderBy(sqlkit.NewOrder().Desc("id")).
				Limit(10),
		} {
			sql, err := sqlkit.GenerateSQL(p, d)
			if err != nil {
				fmt.Printf("-- skipped: %v\n", err)
				continue
			}
			fmt.Printf("%s;\n", sql)
		}
	}

	configs, err := loadConfigs()
	if err != nil {
		log.Fatal(err)
	}
	ctx := context.Background()
	for _, config := range configs {
		conn, err := sqlkit.Connect(config)
		if err != nil {
			log.WithError(err).WithField("connection", config.Name).Error("connect failed")
			continue
		}
		res, err := conn.Exec(ctx,
			sqlkit.NewTableCreate(org).IfNotExists(),
			sqlkit.InsertInto(org.Name).Columns("code", "name").Values("acme", "Acme Inc.").Ignore(),
		)
		if err != nil {
			log.WithError(err).Error("exec failed")
			continue
		}
		var names []string
		if err := conn.Query(ctx, &names, sqlkit.SelectFrom(org.Name, "name")); err != nil {
			log.WithError(err).Error("query failed")
			continue
		}
		log.WithFields(logrus.Fields{
			"connection": conn.Name(),
			"dialect":    conn.Dialect(),
			"affected":   res.AffectedRows,
			"names":      names,
		}).Info("done")
	}
	sqlkit.DisconnectAll()
}

// loadConfigs reads SQLKIT_CONFIG (a YAML file) or falls back to a single SQLKIT_DSN.
func loadConfigs() ([]*sqlkit.ConnectConfig, error) {
	if path := os.Getenv("SQLKIT_CONFIG"); path != "" {
		return sqlkit.LoadConfigFile(path)
	}
	if dsn := os.Getenv("SQLKIT_DSN"); dsn != "" {
		return []*sqlkit.ConnectConfig{{Dsn: dsn}}, nil
	}
	return nil, nil
}
