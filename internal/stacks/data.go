// Copyright © 2026 ソニーレベル <C7kali3@gmail.com>
// Database and ORM detectors

package stacks

import (
	"regexp"

	"github.com/sony-level/stackscan/internal/evidence"
)

const prismaSchema = "prisma/schema.prisma"

var prismaProvider = regexp.MustCompile(`(?s)datasource\s+\w+\s*\{[^}]*?provider\s*=\s*"([^"]+)"`)

// composeImage fires when a docker-compose service runs one of images
func composeImage(weight int, images ...string) signal {
	return func(p *evidence.Project, s *scorer) {
		if rel, img, ok := p.ComposeImage(images...); ok {
			s.add(weight, "%s service image %s", rel, img)
		}
	}
}

// prismaDatasource records the datasource provider as the variant
func prismaDatasource() signal {
	return func(p *evidence.Project, s *scorer) {
		if !s.fired() {
			return
		}
		content := p.ReadCapped(prismaSchema, evidence.MaxEntryRead)
		if m := prismaProvider.FindStringSubmatch(content); m != nil {
			s.variant = m[1]
		}
	}
}

// DatabaseDetectors returns the database catalogue
func DatabaseDetectors() []Detector {
	return ranked(
		newTech(CategoryDatabase, "Supabase", 0,
			dep(70, "@supabase/supabase-js"),
			secondary(file(20, "supabase/config.toml")),
		),
		newTech(CategoryDatabase, "Firebase", 0,
			dep(60, "firebase", "firebase-admin"),
			secondary(file(30, "firebase.json")),
		),
		newTech(CategoryDatabase, "PlanetScale", 0,
			dep(70, "@planetscale/database"),
		),
		newTech(CategoryDatabase, "PostgreSQL", 0,
			dep(60, "pg", "postgres", "@neondatabase/serverless", "@vercel/postgres"),
			secondary(composeImage(20, "postgres")),
		),
		newTech(CategoryDatabase, "MySQL", 0,
			dep(60, "mysql2", "mysql"),
			secondary(composeImage(20, "mysql", "mariadb")),
		),
		newTech(CategoryDatabase, "MongoDB", 0,
			dep(60, "mongodb", "mongoose"),
			secondary(composeImage(20, "mongo")),
		),
		newTech(CategoryDatabase, "SQLite", 0,
			dep(60, "better-sqlite3", "sqlite3", "@libsql/client"),
		),
		newTech(CategoryDatabase, "Redis", 0,
			dep(60, "redis", "ioredis", "@upstash/redis"),
			secondary(composeImage(20, "redis")),
		),
	)
}

// ORMDetectors returns the ORM catalogue
func ORMDetectors() []Detector {
	return ranked(
		newTech(CategoryORM, "Prisma", 0,
			dep(50, "prisma", "@prisma/client"),
			file(40, prismaSchema),
			prismaDatasource(),
		),
		newTech(CategoryORM, "Drizzle", 0,
			dep(50, "drizzle-orm"),
			config(40, "drizzle.config"),
			secondary(related(10, "drizzle-kit")),
		),
		newTech(CategoryORM, "TypeORM", 0,
			dep(60, "typeorm"),
			secondary(config(20, "ormconfig")),
		),
		newTech(CategoryORM, "MikroORM", 0,
			dep(60, "@mikro-orm/core"),
			secondary(config(20, "mikro-orm.config")),
		),
		newTech(CategoryORM, "Sequelize", 0,
			dep(60, "sequelize"),
			secondary(file(20, ".sequelizerc")),
		),
		newTech(CategoryORM, "Kysely", 0,
			dep(60, "kysely"),
		),
		newTech(CategoryORM, "Mongoose", 0,
			dep(60, "mongoose"),
		),
	)
}
