package asset

import (
	"io"

	"github.com/ethereum/go-ethereum/rlp"
)

// symbolWire is Symbol's consensus wire shape: the precision byte packed
// with the ticker name, mirroring spec §6's "(i64 amount, u32
// symbol_with_precision)" asset encoding without requiring a fixed
// enumeration of every possible ticker up front.
type symbolWire struct {
	Precision uint8
	Name      string
}

// EncodeRLP implements rlp.Encoder. Symbol's fields are unexported so the
// default reflective encoder would see an empty struct; this makes the
// wire shape explicit instead.
func (s Symbol) EncodeRLP(w io.Writer) error {
	return rlp.Encode(w, symbolWire{Precision: s.precision, Name: s.name})
}

// DecodeRLP implements rlp.Decoder.
func (s *Symbol) DecodeRLP(stream *rlp.Stream) error {
	var wire symbolWire
	if err := stream.Decode(&wire); err != nil {
		return err
	}
	s.precision = wire.Precision
	s.name = wire.Name
	return nil
}
