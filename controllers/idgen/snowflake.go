package idgen

import (
	"log"
	"sync"

	"github.com/bwmarrin/snowflake"
)

var (
	node     *snowflake.Node
	nodeOnce sync.Once
)

// Init sets the node number; call once at startup before GenerateID.
func Init(nodeID int64) {
	nodeOnce.Do(func() {
		var err error
		node, err = snowflake.NewNode(nodeID)
		if err != nil {
			log.Fatalf("Failed to init Snowflake: %v", err)
		}
	})
}

// GenerateID falls back to node 1 if Init was never called.
func GenerateID() int64 {
	Init(1)
	return node.Generate().Int64()
}
