package rapidapi

import (
	"fmt"
	"net/url"
	"strconv"
	"strings"
)

// Param is a single query parameter. Value is stringified when encoded:
// strings verbatim, booleans as true/false, numbers in shortest decimal form.
type Param struct {
	Key   string
	Value any
}

// Params is an ordered list of query parameters, the encoded query string
// keeps the order they were added in. Keys may repeat.
type Params []Param

// P builds Params from alternating key, value pairs. It panics on an odd
// number of arguments or a non-string key.
func P(kv ...any) Params {
	if len(kv)%2 != 0 {
		panic("rapidapi.P: odd number of arguments")
	}
	out := make(Params, 0, len(kv)/2)
	for i := 0; i < len(kv); i += 2 {
		key, ok := kv[i].(string)
		if !ok {
			panic(fmt.Sprintf("rapidapi.P: key %v is not a string", kv[i]))
		}
		out = append(out, Param{Key: key, Value: kv[i+1]})
	}
	return out
}

// Add returns a copy of p with another parameter appended.
func (p Params) Add(key string, value any) Params {
	out := make(Params, len(p), len(p)+1)
	copy(out, p)
	return append(out, Param{Key: key, Value: value})
}

// Encode form-encodes the parameters in order. Parameters with a nil value
// are left out.
func (p Params) Encode() string {
	var sb strings.Builder
	for _, param := range p {
		if param.Value == nil {
			continue
		}
		if sb.Len() > 0 {
			sb.WriteByte('&')
		}
		sb.WriteString(url.QueryEscape(param.Key))
		sb.WriteByte('=')
		sb.WriteString(url.QueryEscape(stringify(param.Value)))
	}
	return sb.String()
}

func stringify(value any) string {
	switch v := value.(type) {
	case string:
		return v
	case bool:
		return strconv.FormatBool(v)
	case int:
		return strconv.Itoa(v)
	case int64:
		return strconv.FormatInt(v, 10)
	case int32:
		return strconv.FormatInt(int64(v), 10)
	case uint:
		return strconv.FormatUint(uint64(v), 10)
	case uint64:
		return strconv.FormatUint(v, 10)
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)
	case float32:
		return strconv.FormatFloat(float64(v), 'f', -1, 32)
	case fmt.Stringer:
		return v.String()
	default:
		return fmt.Sprint(v)
	}
}

// BuildURL joins the base address, endpoint and encoded query.
func BuildURL(baseUrl, endpoint string, params Params) string {
	u := strings.TrimRight(baseUrl, "/") + "/" + strings.TrimLeft(endpoint, "/")
	query := params.Encode()
	if query != "" {
		u += "?" + query
	}
	return u
}
