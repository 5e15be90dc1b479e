// Standalone GraphQL catalog server — run with: go run ./cmd/graphql
package main

import (
	"context"
	"fmt"
	"log"
	"math/rand"
	"os"
	"time"

	"github.com/common-nighthawk/go-figure"
	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"

	"atelier.GO/api"
	graphqlApi "atelier.GO/api/graphql"
	"atelier.GO/catalog"
)

func main() {
	_ = godotenv.Load()

	snap := catalog.NewSnapshot()
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	if err := snap.Refresh(ctx, catalog.FixtureSource{}); err != nil {
		log.Fatal("catalog:", err)
	}

	e := echo.New()
	graphqlApi.RegisterGraphQLRoutes(e, &api.Deps{Catalog: snap})

	// ASCII banner on start (random font each run)
	gqlFonts := []string{"banner", "big", "block", "slant", "standard", "small", "shadow", "speed", "thick", "univers", "doom", "larry3d", "puffy", "rectangles", "bigchief", "cosmic"}
	fig := figure.NewFigure("Atelier GQL ->", gqlFonts[rand.Intn(len(gqlFonts))], true)
	fig.Print()
	fmt.Println("Standalone GraphQL catalog server")

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}
	log.Printf("GraphQL at http://localhost:%s/graphql  Playground at http://localhost:%s/playground", port, port)
	e.Logger.Fatal(e.Start(":" + port))
}
