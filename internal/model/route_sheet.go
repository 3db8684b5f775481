package model

import "time"

// RouteSheet is the printable work sheet for one vehicle: the vehicle's
// own schedule plus every request currently assigned to it.
type RouteSheet struct {
	Vehicle     Vehicle
	Requests    []CollectionRequest
	GeneratedAt time.Time
}
