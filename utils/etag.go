package utils

import (
	"crypto/sha1"
	"encoding/hex"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// GenerateETag derives a stable entity tag from a document id and its last
// update time.
func GenerateETag(id primitive.ObjectID, updatedAt time.Time) string {
	sum := sha1.Sum([]byte(fmt.Sprintf("%s-%d", id.Hex(), updatedAt.UnixNano())))
	return `"` + hex.EncodeToString(sum[:]) + `"`
}
