package rawmem

import (
	"bytes"
	"errors"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"runtime"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/sys/unix"
)

// createMapFile writes content to a fresh file and opens it read-write.
func createMapFile(t *testing.T, content []byte) (*os.File, string) {
	t.Helper()

	path := filepath.Join(t.TempDir(), "mapped.bin")
	require.NoError(t, os.WriteFile(path, content, 0o600))

	f, err := os.OpenFile(path, os.O_RDWR, 0)
	require.NoError(t, err)
	t.Cleanup(func() {
		assert.NoError(t, f.Close())
	})
	return f, path
}

func TestMap(t *testing.T) {
	pageSize := int64(PageSize())

	t.Run("read-only", func(t *testing.T) {
		content := bytes.Repeat([]byte{0x5A}, int(pageSize))
		f, _ := createMapFile(t, content)

		m := New()
		addr, err := m.Map(int(f.Fd()), 0, pageSize, MapReadOnly)
		require.NoError(t, err)

		got := make([]byte, len(content))
		m.PeekByteArray(addr, got)
		assert.Equal(t, content, got)

		require.NoError(t, m.Unmap(addr, pageSize))
	})

	t.Run("read-write reaches the file", func(t *testing.T) {
		f, path := createMapFile(t, make([]byte, pageSize))

		m := New()
		addr, err := m.Map(int(f.Fd()), 0, pageSize, MapReadWrite)
		require.NoError(t, err)

		m.PokeByteArray(addr, []byte("written through the mapping"))
		require.NoError(t, m.Sync(addr, pageSize))
		require.NoError(t, m.Unmap(addr, pageSize))

		onDisk, err := os.ReadFile(path)
		require.NoError(t, err)
		assert.True(t, bytes.HasPrefix(onDisk, []byte("written through the mapping")))
	})

	t.Run("private stays private", func(t *testing.T) {
		content := bytes.Repeat([]byte{0x11}, int(pageSize))
		f, path := createMapFile(t, content)

		m := New()
		addr, err := m.Map(int(f.Fd()), 0, pageSize, MapPrivate)
		require.NoError(t, err)

		m.PokeByte(addr, 0xFF)
		assert.Equal(t, byte(0xFF), m.PeekByte(addr))

		require.NoError(t, m.Unmap(addr, pageSize))

		onDisk, err := os.ReadFile(path)
		require.NoError(t, err)
		assert.Equal(t, content, onDisk)
	})

	t.Run("nonzero offset", func(t *testing.T) {
		content := make([]byte, 2*pageSize)
		for i := range content[pageSize:] {
			content[pageSize+int64(i)] = byte(i)
		}
		f, _ := createMapFile(t, content)

		m := New()
		addr, err := m.Map(int(f.Fd()), pageSize, pageSize, MapReadOnly)
		require.NoError(t, err)

		got := make([]byte, pageSize)
		m.PeekByteArray(addr, got)
		assert.Equal(t, content[pageSize:], got)

		require.NoError(t, m.Unmap(addr, pageSize))
	})

	t.Run("bad mode", func(t *testing.T) {
		f, _ := createMapFile(t, make([]byte, pageSize))

		m := New()
		_, err := m.Map(int(f.Fd()), 0, pageSize, MapMode(7))
		require.Error(t, err)

		var modeErr *ErrInvalidMapMode
		require.ErrorAs(t, err, &modeErr)
		assert.Equal(t, MapMode(7), modeErr.Mode)
		assert.ErrorIs(t, err, unix.EINVAL)
	})

	t.Run("bad descriptor", func(t *testing.T) {
		m := New()
		_, err := m.Map(-1, 0, pageSize, MapReadWrite)
		assert.ErrorIs(t, err, ErrMapFailed)
	})

	t.Run("negative size", func(t *testing.T) {
		f, _ := createMapFile(t, make([]byte, pageSize))

		m := New()
		_, err := m.Map(int(f.Fd()), 0, -1, MapPrivate)

		var sizeErr *ErrInvalidSize
		require.ErrorAs(t, err, &sizeErr)
		assert.Equal(t, int64(-1), sizeErr.Size)
	})
}

func TestSync(t *testing.T) {
	pageSize := int64(PageSize())
	m := New()

	t.Run("zero length", func(t *testing.T) {
		f, _ := createMapFile(t, make([]byte, pageSize))
		addr, err := m.Map(int(f.Fd()), 0, pageSize, MapReadWrite)
		require.NoError(t, err)
		defer func() {
			assert.NoError(t, m.Unmap(addr, pageSize))
		}()

		assert.NoError(t, m.Sync(addr, 0))
	})

	t.Run("unmapped range", func(t *testing.T) {
		f, _ := createMapFile(t, make([]byte, pageSize))
		addr, err := m.Map(int(f.Fd()), 0, pageSize, MapReadWrite)
		require.NoError(t, err)
		require.NoError(t, m.Unmap(addr, pageSize))

		assert.Error(t, m.Sync(addr, pageSize))
	})
}

func TestResidency(t *testing.T) {
	if runtime.GOOS != "linux" {
		t.Skipf("residency queries need mincore, unavailable on %s", runtime.GOOS)
	}

	pageSize := int64(PageSize())
	const pages = 3
	size := pages * pageSize

	f, _ := createMapFile(t, make([]byte, size))
	m := New()

	addr, err := m.Map(int(f.Fd()), 0, size, MapPrivate)
	require.NoError(t, err)
	t.Cleanup(func() {
		assert.NoError(t, m.Unmap(addr, size))
	})

	// Touch every page so the kernel has them resident.
	m.Memset(addr, 0xEE, int(size))

	t.Run("is loaded", func(t *testing.T) {
		assert.True(t, m.IsLoaded(addr, size))
	})

	t.Run("zero size is trivially loaded", func(t *testing.T) {
		assert.True(t, m.IsLoaded(addr, 0))
	})

	t.Run("interior range", func(t *testing.T) {
		assert.True(t, m.IsLoaded(addr+100, size-100))
	})

	t.Run("resident pages", func(t *testing.T) {
		resident, err := m.ResidentPages(addr, size)
		require.NoError(t, err)
		assert.Equal(t, uint64(pages), resident.GetCardinality())
		for i := uint32(0); i < pages; i++ {
			assert.True(t, resident.Contains(i))
		}
	})

	t.Run("resident pages of empty range", func(t *testing.T) {
		resident, err := m.ResidentPages(addr, 0)
		require.NoError(t, err)
		assert.True(t, resident.IsEmpty())
	})

	t.Run("load", func(t *testing.T) {
		m.Load(addr, size)
		assert.True(t, m.IsLoaded(addr, size))
	})

	t.Run("write sync loaded chain", func(t *testing.T) {
		f2, _ := createMapFile(t, make([]byte, size))

		shared, err := m.Map(int(f2.Fd()), 0, size, MapReadWrite)
		require.NoError(t, err)
		defer func() {
			assert.NoError(t, m.Unmap(shared, size))
		}()

		m.PokeByteArray(shared, bytes.Repeat([]byte{0xAD}, int(size)))
		require.NoError(t, m.Sync(shared, size))
		assert.True(t, m.IsLoaded(shared, size))
	})

	t.Run("unmapped range is not loaded", func(t *testing.T) {
		hole, err := m.Map(int(f.Fd()), 0, size, MapPrivate)
		require.NoError(t, err)
		require.NoError(t, m.Unmap(hole, size))

		assert.False(t, m.IsLoaded(hole, size))
	})
}

func TestAdvise(t *testing.T) {
	pageSize := int64(PageSize())
	m := New()

	addr, err := m.Malloc(2 * pageSize)
	require.NoError(t, err)
	t.Cleanup(func() {
		assert.NoError(t, m.Free(addr))
	})

	for _, advice := range []Advice{
		AdviceNormal, AdviceSequential, AdviceRandom, AdviceWillNeed, AdviceDontNeed,
	} {
		assert.NoError(t, m.Advise(addr, pageSize, advice))
	}

	assert.NoError(t, m.Advise(addr, 0, AdviceNormal))
}

func TestMapModeString(t *testing.T) {
	assert.Equal(t, "private", MapPrivate.String())
	assert.Equal(t, "read-only", MapReadOnly.String())
	assert.Equal(t, "read-write", MapReadWrite.String())
	assert.Equal(t, "mode(9)", MapMode(9).String())
}

func TestMapMetrics(t *testing.T) {
	pageSize := int64(PageSize())

	collector := &BasicMetricsCollector{}
	m := New(
		WithMetricsCollector(collector),
		WithLogger(NewLogger(slog.NewTextHandler(io.Discard, &slog.HandlerOptions{Level: slog.LevelDebug}))),
	)

	f, _ := createMapFile(t, make([]byte, pageSize))

	addr, err := m.Map(int(f.Fd()), 0, pageSize, MapReadWrite)
	require.NoError(t, err)
	require.NoError(t, m.Sync(addr, pageSize))
	m.Load(addr, pageSize)
	require.NoError(t, m.Unmap(addr, pageSize))

	_, err = m.Map(-1, 0, pageSize, MapReadWrite)
	require.Error(t, err)

	stats := collector.GetStats()
	assert.Equal(t, int64(2), stats.MapCount)
	assert.Equal(t, int64(1), stats.MapErrors)
	assert.Equal(t, int64(1), stats.UnmapCount)
	assert.Equal(t, int64(1), stats.SyncCount)
	assert.Equal(t, int64(1), stats.LoadCount)
	assert.Equal(t, int64(0), stats.MappedBytes, "gauge must return to zero after unmap")
}

func TestUnmapInvalidSize(t *testing.T) {
	m := New()
	err := m.Unmap(Address(uintptr(PageSize())), -5)

	var sizeErr *ErrInvalidSize
	assert.True(t, errors.As(err, &sizeErr))
}
