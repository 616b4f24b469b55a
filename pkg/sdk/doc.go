// Package nearby provides an embeddable Go client for the nearby proximity
// search engine over gurus and gigs stored in Valkey or Redis.
//
// # Store-backed client
//
//	client, _ := nearby.New(ctx, nearby.WithValkey("localhost:6379", ""))
//	defer client.Close()
//	_ = client.Put(ctx, nearby.Guru, []nearby.Record{{ID: "g1", Doc: doc}})
//	res, _ := client.Search(ctx, nearby.Query{
//	    Lat: 40.7128, Lng: -74.0060, RadiusMiles: 10,
//	    Types: []nearby.EntityType{nearby.Guru, nearby.Gig},
//	})
//
// # Custom sources
//
// Any backend can supply candidates by implementing Source:
//
//	client, _ := nearby.New(ctx,
//	    nearby.WithSource(nearby.Gig, nearby.SourceFunc(fetchGigs)),
//	)
//
// Sources return every record of their type; the engine applies the
// distance check, filters, ranking and pagination itself.
package nearby
