package stream

import (
	"hash/crc32"
)

// crcTable is the IEEE CRC-32 table.
var crcTable = crc32.MakeTable(crc32.IEEE)

// ComputeCRC computes the CRC-32 (IEEE) of data.
func ComputeCRC(data []byte) uint32 {
	return crc32.Checksum(data, crcTable)
}
