package domain

type VolumeField struct {
	Key   string `json:"key"`
	Value string `json:"value"`
}

// VolumeDetail keeps the fields of `llist volume=` in output order.
type VolumeDetail struct {
	Name   string        `json:"name"`
	Fields []VolumeField `json:"fields"`
}

// Map returns the fields keyed by name. Later duplicates win.
func (v VolumeDetail) Map() map[string]string {
	m := make(map[string]string, len(v.Fields))
	for _, f := range v.Fields {
		m[f.Key] = f.Value
	}
	return m
}
