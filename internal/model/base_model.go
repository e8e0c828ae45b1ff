package model

import (
	"database/sql/driver"
	"encoding/json"
	"errors"
)

// ==================== JSON 类型 ====================

// JSONMap JSON对象（map 存储）
type JSONMap map[string]interface{}

func (m JSONMap) Value() (driver.Value, error) {
	if m == nil {
		return "{}", nil
	}
	return json.Marshal(m)
}

func (m *JSONMap) Scan(value interface{}) error {
	if value == nil {
		*m = make(map[string]interface{})
		return nil
	}
	bytes, ok := value.([]byte)
	if !ok {
		str, okStr := value.(string)
		if !okStr {
			return errors.New("type assertion to []byte failed")
		}
		bytes = []byte(str)
	}
	return json.Unmarshal(bytes, m)
}
