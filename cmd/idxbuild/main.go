// idxbuild builds a B+ tree secondary index over one fixed-offset scalar
// attribute of a heap file, bulk-loading it from a full relation scan.
//
// Usage: go run ./cmd/idxbuild -base <dir> -relation <name> -offset <n>
// Example: go run ./cmd/idxbuild -base databases/demo -relation students -offset 8
package main

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"

	"github.com/Sripradha-karkala/BtreeIndex/btlog"
	"github.com/Sripradha-karkala/BtreeIndex/btree"
	"github.com/Sripradha-karkala/BtreeIndex/buffer"
	"github.com/Sripradha-karkala/BtreeIndex/heap"
	"github.com/Sripradha-karkala/BtreeIndex/types"
	"go.uber.org/zap"
)

func main() {
	base := flag.String("base", "", "directory holding <relation>.heap and the built .idx file")
	relation := flag.String("relation", "", "base relation name")
	offset := flag.Int("offset", -1, "byte offset of the int32 attribute to index")
	flag.Parse()

	if *base == "" || *relation == "" || *offset < 0 {
		fmt.Fprintln(os.Stderr, "Usage: idxbuild -base <dir> -relation <name> -offset <n>")
		os.Exit(1)
	}

	heapPath := filepath.Join(*base, *relation+".heap")
	hf, err := heap.Open(heapPath, buffer.Config{})
	if err != nil {
		fmt.Fprintf(os.Stderr, "open heap file %s: %v\n", heapPath, err)
		os.Exit(1)
	}
	defer hf.Close()

	scanner := heap.NewScanner(hf)
	defer scanner.Close()

	zl, err := zap.NewProduction()
	if err != nil {
		fmt.Fprintf(os.Stderr, "build zap logger: %v\n", err)
		os.Exit(1)
	}
	defer zl.Sync()
	log := btlog.NewZap(zl)

	tree, indexName, err := btree.OpenIndex(*base, *relation, int32(*offset), types.Integer, buffer.Config{Logger: log}, log, scanner)
	if err != nil {
		fmt.Fprintf(os.Stderr, "build index: %v\n", err)
		os.Exit(1)
	}
	defer tree.Close()

	fmt.Printf("built index %q (root page %d, root is leaf: %v)\n", indexName, tree.RootPageNum(), tree.IsRootLeaf())
}
