// Package device42 is a small client for the Device42 REST API and its DOQL
// query service.
//
// # Paging
//
// Listings are requested with _paging=1&_return_as_object=1&_max_results=N. While
// offset+limit is below total_count the next page is requested and its list is
// appended, up to maxPages requests.
//
// # DOQL
//
// Query sends a DOQL statement to services/data/v1.0/query/ and returns the rows as
// loose-typed records.
//
// # Usage
//
//	client, err := device42.NewClient(cfg.Device42)
//	buildings, err := client.List(ctx, "api/1.0/buildings/", "buildings")
//	rows, err := client.Query(ctx, "SELECT v.vlan_pk, v.name FROM view_vlan_v1 v")
package device42
