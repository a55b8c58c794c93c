package builder

import (
	"bytes"
	"encoding/json"
	"strconv"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/pkg/errors"
)

// CallValue is the native value attached to a proposed call, kept as the raw
// JSON token so absent, null, "0" and 0 stay distinguishable.
type CallValue struct {
	raw json.RawMessage
}

func StringValue(s string) CallValue {
	raw, _ := json.Marshal(s)
	return CallValue{raw: raw}
}

func NumberValue(n int64) CallValue {
	return CallValue{raw: json.RawMessage(strconv.FormatInt(n, 10))}
}

func NullValue() CallValue {
	return CallValue{raw: json.RawMessage("null")}
}

func (v *CallValue) UnmarshalJSON(data []byte) error {
	v.raw = append(v.raw[:0], data...)
	return nil
}

func (v CallValue) MarshalJSON() ([]byte, error) {
	if len(v.raw) == 0 {
		return []byte("null"), nil
	}
	return v.raw, nil
}

func (v CallValue) String() string {
	if len(v.raw) == 0 {
		return "<absent>"
	}
	return string(v.raw)
}

// transfersNothing reports whether the value is absent, null, the string "0"
// or a number equal to zero.
func (v CallValue) transfersNothing() bool {
	raw := bytes.TrimSpace(v.raw)
	if len(raw) == 0 || bytes.Equal(raw, []byte("null")) {
		return true
	}
	switch raw[0] {
	case '"':
		var s string
		if err := json.Unmarshal(raw, &s); err != nil {
			return false
		}
		return s == "0"
	case '-', '0', '1', '2', '3', '4', '5', '6', '7', '8', '9':
		f, err := strconv.ParseFloat(string(raw), 64)
		return err == nil && f == 0
	default:
		return false
	}
}

// DestinationCall is a call to execute on the remote chain, shaped like a
// Safe transaction proposal.
type DestinationCall struct {
	To    common.Address `json:"to"`
	Value CallValue      `json:"value"`
	Data  hexutil.Bytes  `json:"data"`
}

// UnmarshalJSON requires to and data. value may be omitted.
func (c *DestinationCall) UnmarshalJSON(input []byte) error {
	type destinationCall struct {
		To    *common.Address `json:"to"`
		Value CallValue       `json:"value"`
		Data  *hexutil.Bytes  `json:"data"`
	}
	var dec destinationCall
	if err := json.Unmarshal(input, &dec); err != nil {
		return err
	}
	if dec.To == nil {
		return errors.Wrap(ErrEncoding, "missing required field 'to' for DestinationCall")
	}
	if dec.Data == nil {
		return errors.Wrap(ErrEncoding, "missing required field 'data' for DestinationCall")
	}
	c.To = *dec.To
	c.Value = dec.Value
	c.Data = *dec.Data
	if c.Data == nil {
		c.Data = hexutil.Bytes{}
	}
	return nil
}

// Transaction is an origin chain transaction handed to the wallet for signing.
type Transaction struct {
	To    common.Address `json:"to"`
	Value string         `json:"value"`
	Data  hexutil.Bytes  `json:"data"`
}
