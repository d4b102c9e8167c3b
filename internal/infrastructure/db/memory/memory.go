// Package memory holds process-local implementations of the repository ports.
// They back STORE_DRIVER=memory and the end-to-end router tests, and keep the
// same uniqueness and ordering rules as the MongoDB repositories.
package memory

import "go.mongodb.org/mongo-driver/bson/primitive"

// newID issues ids shaped like the ones MongoDB assigns, so clients cannot
// tell the drivers apart.
func newID() string {
	return primitive.NewObjectID().Hex()
}
