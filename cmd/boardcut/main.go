// BoardCut: wood cutting plans for standard boards.
//
// Lays rectangular pieces out on 244 x 122 cm boards (or any board size),
// counts the boards to buy and writes the KDT cut list, board diagrams,
// QR labels and DXF for the workshop. Also serves the same over HTTP.
//
// Build:
//   go build -o boardcut ./cmd/boardcut
//
// Usage:
//   boardcut layout pieces.csv --xlsx kdt.xlsx --pdf plan.pdf
//   boardcut serve --addr :8080

package main

import "github.com/piwi3910/BoardCut/internal/cli"

func main() {
	cli.Execute()
}
