package buffer

import "encoding/binary"

type options struct {
	order binary.ByteOrder
}

// Option configures a buffer.
type Option func(*options)

// WithByteOrder sets the byte order of the typed accessors. The default
// is the host's native order.
func WithByteOrder(order binary.ByteOrder) Option {
	return func(o *options) {
		if order != nil {
			o.order = order
		}
	}
}

func applyOptions(optFns []Option) options {
	o := options{
		order: binary.NativeEndian,
	}
	for _, fn := range optFns {
		fn(&o)
	}
	return o
}
