// Package buffer provides bounds-checked windows over native memory.
//
// A Buffer wraps a file-backed mapping or an anonymous allocation and
// exposes typed accessors that honor a configurable byte order, plus
// io.ReaderAt, io.WriterAt, io.ReaderFrom and io.WriterTo for bulk
// transfer.
//
// # Usage
//
//	m := rawmem.New()
//
//	f, _ := os.OpenFile("data.bin", os.O_RDWR, 0)
//	defer f.Close()
//
//	buf, err := buffer.MapFile(m, f, 0, 4096, rawmem.MapReadWrite,
//		buffer.WithByteOrder(binary.BigEndian))
//	if err != nil {
//		log.Fatal(err)
//	}
//	defer buf.Close()
//
//	if err := buf.PutInt(0, 42); err != nil {
//		log.Fatal(err)
//	}
//	if err := buf.Sync(); err != nil {
//		log.Fatal(err)
//	}
//
// # File Windows
//
// MapFile accepts any byte position; the mapping itself starts at the
// preceding allocation-granularity boundary and the buffer hides the
// leading slack. The file is grown when the window extends past its
// end.
//
// # Thread Safety
//
// Close may be called from any goroutine and is idempotent. Accessors
// may run concurrently as long as their index ranges do not overlap,
// the same rule raw native memory imposes.
package buffer
