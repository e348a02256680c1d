package icon

import (
	"bytes"
	"encoding/binary"
)

// toICO заворачивает PNG в контейнер ICO с одной картинкой.
// Windows принимает PNG внутри ICO начиная с Vista.
func toICO(pngData []byte) []byte {
	var buf bytes.Buffer
	le := binary.LittleEndian

	// ICONDIR
	binary.Write(&buf, le, uint16(0)) // reserved
	binary.Write(&buf, le, uint16(1)) // type: icon
	binary.Write(&buf, le, uint16(1)) // count

	// ICONDIRENTRY
	buf.WriteByte(size)
	buf.WriteByte(size)
	buf.WriteByte(0)                   // palette
	buf.WriteByte(0)                   // reserved
	binary.Write(&buf, le, uint16(1))  // planes
	binary.Write(&buf, le, uint16(32)) // bpp
	binary.Write(&buf, le, uint32(len(pngData)))
	binary.Write(&buf, le, uint32(6+16))

	buf.Write(pngData)
	return buf.Bytes()
}
