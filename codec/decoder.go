package codec

// Decoder reads Records from the positional wire format of one layout plan.
// It borrows the input only for the duration of a call: decoded strings are
// copies.
type Decoder struct {
	plan *LayoutPlan
}

func NewDecoder(plan *LayoutPlan) *Decoder {
	return &Decoder{plan: plan}
}

// Plan returns the layout plan the decoder reads.
func (d *Decoder) Plan() *LayoutPlan {
	return d.plan
}

// Decode decodes one record from the start of data. Bytes after the last
// field are ignored. On error the returned Record is nil.
func (d *Decoder) Decode(data []byte) (Record, error) {
	rec, _, err := d.DecodePrefix(data)
	return rec, err
}

// DecodePrefix is like Decode and also returns the number of bytes the record
// occupied, which is where the next back-to-back record begins.
func (d *Decoder) DecodePrefix(data []byte) (Record, int, error) {
	p := d.plan
	vals := make([]value, p.Len())
	n, err := readRecord(p, data, vals)
	if err != nil {
		return nil, 0, err
	}

	rec := make(Record, p.Len())
	for i, v := range vals {
		f := p.Field(i).Field
		rec[f.Name] = toAny(f.Kind, v)
	}
	return rec, n, nil
}
