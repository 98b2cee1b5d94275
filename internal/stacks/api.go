// Copyright © 2026 ソニーレベル <C7kali3@gmail.com>
// API pattern detectors

package stacks

// APIDetectors returns the API pattern catalogue
func APIDetectors() []Detector {
	return ranked(
		newTech(CategoryAPI, "tRPC", 0,
			dep(60, "@trpc/server"),
			secondary(related(10, "@trpc/client", "@trpc/react-query", "@trpc/next")),
		),
		newTech(CategoryAPI, "GraphQL", 0,
			dep(40, "graphql"),
			oneOf(
				withVariant("apollo", related(20, "@apollo/server", "apollo-server", "@apollo/client")),
				withVariant("yoga", related(20, "graphql-yoga")),
				withVariant("urql", related(20, "urql", "@urql/core")),
				withVariant("relay", related(20, "react-relay", "relay-runtime")),
			),
			secondary(config(20, "codegen")),
		),
		newTech(CategoryAPI, "REST", 0,
			withVariant("route-handlers", dir(40, "pages/api", "app/api", "src/pages/api", "src/app/api")),
			related(40, "express", "fastify", "hono", "koa", "@nestjs/core"),
			file(20, "openapi.yaml", "openapi.yml", "openapi.json", "swagger.yaml", "swagger.yml", "swagger.json"),
		),
		newTech(CategoryAPI, "gRPC", 0,
			dep(60, "@grpc/grpc-js"),
			secondary(dir(10, "proto")),
			secondary(file(10, "buf.yaml")),
		),
		newTech(CategoryAPI, "WebSocket", 0,
			dep(50, "socket.io", "ws"),
			secondary(related(10, "socket.io-client")),
		),
	)
}
