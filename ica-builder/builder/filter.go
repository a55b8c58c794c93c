package builder

// IsCallSupported reports whether the call can be relayed. The router has no
// way to forward native value, so only calls transferring nothing qualify.
func IsCallSupported(call DestinationCall) bool {
	return call.Value.transfersNothing()
}

// IsBatchSupported reports whether every call in the batch is supported.
func IsBatchSupported(calls []DestinationCall) bool {
	return len(UnsupportedCalls(calls)) == 0
}

// UnsupportedCalls returns the indices of calls that transfer value.
func UnsupportedCalls(calls []DestinationCall) []int {
	var idx []int
	for i, call := range calls {
		if !IsCallSupported(call) {
			idx = append(idx, i)
		}
	}
	return idx
}
