package matrix

// deepCopyValue copies the plain-data shapes that occur in bunch and parameter
// values: string-keyed maps, slices, and scalars. Scalars (and any other
// types) are returned as-is.
func deepCopyValue(v interface{}) interface{} {
	switch tv := v.(type) {
	case TestBunch:
		return TestBunch(deepCopyMap(tv))
	case TestParameters:
		return TestParameters(deepCopyMap(tv))
	case map[string]interface{}:
		return deepCopyMap(tv)
	case []interface{}:
		out := make([]interface{}, len(tv))
		for i, el := range tv {
			out[i] = deepCopyValue(el)
		}
		return out
	case []string:
		out := make([]string, len(tv))
		copy(out, tv)
		return out
	default:
		return v
	}
}

func deepCopyMap(m map[string]interface{}) map[string]interface{} {
	if m == nil {
		return nil
	}
	out := make(map[string]interface{}, len(m))
	for k, v := range m {
		out[k] = deepCopyValue(v)
	}
	return out
}

func deepCopyParameters(p TestParameters) TestParameters {
	if p == nil {
		return nil
	}
	return TestParameters(deepCopyMap(map[string]interface{}(p)))
}

func deepCopyBunch(b TestBunch) TestBunch {
	if b == nil {
		return nil
	}
	return TestBunch(deepCopyMap(map[string]interface{}(b)))
}
