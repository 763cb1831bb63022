// Package httpapi serves the ingestion pipeline as a JSON API on chi.
//
// Routes:
//
//	POST /embed   {"text"}                                 -> {"embedding"}
//	POST /ingest  {"doc_id","title","type","path"}         -> {"doc_id","title","chunks"}
//	POST /chunk   {"text","target_chars","overlap_chars"}  -> {"chunks"}
//	GET  /healthz                                          -> {"status","provider","model","dimension"}
//
// Errors are returned as {"error": "..."} with 400 for validation failures,
// 404 for missing files, 422 for undecodable content and 500 otherwise.
package httpapi
