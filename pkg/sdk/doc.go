// Package prodsearch provides an embedded Go client for the budget-aware
// product search engine. It wires the same ranking pipeline the HTTP API
// serves directly over a Redis connection, so batch jobs and internal
// services can search and ingest without going through HTTP.
//
//	client, _ := prodsearch.New(ctx,
//	    prodsearch.WithRedis("localhost:6379", ""),
//	    prodsearch.WithEmbedder(myEmbedder),
//	)
//	defer client.Close()
//
//	res, _ := client.Search(ctx, prodsearch.SearchParams{
//	    Query:  "gaming laptop",
//	    Budget: prodsearch.Budget(1500),
//	})
//	for _, p := range res.Results {
//	    fmt.Println(p.Title, p.CompositeScore)
//	}
package prodsearch
