package logx

// NopSensitiveDataMasker passes log payloads through unchanged. Used where
// the traffic carries nothing worth hiding.
type NopSensitiveDataMasker struct{}

func NewNopSensitiveDataMasker() NopSensitiveDataMasker {
	return NopSensitiveDataMasker{}
}

func (NopSensitiveDataMasker) Mask(input []byte) []byte {
	return input
}
