package server

import "github.com/royalcat/polyquad/quadtree"

//go:generate go tool easyjson -all models.go

//easyjson:json
type PolygonRequest struct {
	Points [][2]int32 `json:"points"`
}

//easyjson:json
type IDsResponse struct {
	IDs []int64 `json:"ids"`
}

// BatchResponse holds one sorted id list per queried point, in request
// order.
//
//easyjson:json
type BatchResponse struct {
	Results [][]int64 `json:"results"`
}

//easyjson:json
type ErrorResponse struct {
	Error string `json:"error"`
}

//easyjson:json
type StatsResponse struct {
	Polygons  int `json:"polygons"`
	Nodes     int `json:"nodes"`
	Leaves    int `json:"leaves"`
	Depth     int `json:"depth"`
	FreeNodes int `json:"free_nodes"`
	Arena     int `json:"arena"`
}

func statsResponse(s quadtree.Stats) StatsResponse {
	return StatsResponse(s)
}
