package checksum

import (
	"bytes"
	"encoding/binary"
	"hash/crc32"
)

type crc32IEEE struct {
	name  string
	table *crc32.Table
}

func NewCRC32IEEE() *crc32IEEE {
	return &crc32IEEE{
		name:  string(CRC32IEEE),
		table: crc32.MakeTable(crc32.IEEE),
	}
}

func (c *crc32IEEE) Sum(data []byte) []byte {
	sum := make([]byte, crc32.Size)
	binary.BigEndian.PutUint32(sum, crc32.Checksum(data, c.table))
	return sum
}

func (c *crc32IEEE) Verify(data []byte, expected []byte) bool {
	return bytes.Equal(c.Sum(data), expected)
}

func (c *crc32IEEE) Size() int {
	return crc32.Size
}

func (c *crc32IEEE) Name() string {
	return c.name
}
