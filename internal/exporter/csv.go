package exporter

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"strconv"
)

// writeCSV 把行集合编码为 CSV 字节
func writeCSV(rows [][]string) ([]byte, error) {
	buf := &bytes.Buffer{}
	writer := csv.NewWriter(buf)
	for _, row := range rows {
		if err := writer.Write(row); err != nil {
			return nil, err
		}
	}
	writer.Flush()
	if err := writer.Error(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// formatPrice 统一两位小数价格
func formatPrice(price float64) string {
	return strconv.FormatFloat(price, 'f', 2, 64)
}

// flatFileName 平面文件命名：<channel-slug>_bulk_upload.csv
func flatFileName(slug string) string {
	return fmt.Sprintf("%s_bulk_upload.csv", slug)
}
