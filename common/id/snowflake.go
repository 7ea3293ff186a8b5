package id

import (
	"fmt"
	"sync"

	"github.com/bwmarrin/snowflake"
)

// Node ids per process so ids minted concurrently never collide.
const (
	NodeServer int64 = 1
	NodeWorker int64 = 2
	NodeSeed   int64 = 3
)

var (
	node *snowflake.Node
	once sync.Once
)

// Init initializes the Snowflake node with the given node ID.
func Init(nodeID int64) error {
	var err error
	once.Do(func() {
		node, err = snowflake.NewNode(nodeID)
	})
	if err != nil {
		return fmt.Errorf("creating snowflake node %d: %w", nodeID, err)
	}
	return nil
}

// New generates a time-ordered int64 row id. Init must have been called.
func New() int64 {
	return node.Generate().Int64()
}
