package task

import (
	"encoding/csv"
	"fmt"
	"io"
	"math"
	"os"
	"strings"
	"time"
)

// CSV 必备逻辑列（大小写不敏感），description 列可选
var requiredColumns = []string{"sku", "name"}

const descriptionColumn = "description"

// productRow 规范化后的一行：sku 已 trim + 小写，name/description 已 trim
type productRow struct {
	Sku         string
	Name        string
	Description string
}

// normalizeSku 规范化 sku：trim + 小写，作为 upsert 的唯一性轴
func normalizeSku(raw string) string {
	return strings.ToLower(strings.TrimSpace(raw))
}

// resolveColumns 解析表头，返回逻辑列名到下标的映射
// 表头匹配大小写不敏感、忽略首尾空白，多余的列直接忽略
func resolveColumns(header []string) map[string]int {
	cols := make(map[string]int, len(header))
	for i, h := range header {
		name := strings.ToLower(strings.TrimSpace(h))
		if name == "" {
			continue
		}
		if _, ok := cols[name]; !ok {
			cols[name] = i
		}
	}
	return cols
}

// missingColumns 返回缺失的必备列（入队前校验用）
func missingColumns(cols map[string]int) []string {
	var missing []string
	for _, name := range requiredColumns {
		if _, ok := cols[name]; !ok {
			missing = append(missing, name)
		}
	}
	return missing
}

// RequiredColumns 返回必备逻辑列名（错误响应里回显给调用方）
func RequiredColumns() []string {
	out := make([]string, len(requiredColumns))
	copy(out, requiredColumns)
	return out
}

// ValidateCSVHeader 入队前校验 CSV 表头，返回缺失的必备列
// 文件不可读或没有表头行视为校验失败
func ValidateCSVHeader(filePath string) ([]string, error) {
	f, err := os.Open(filePath)
	if err != nil {
		return nil, fmt.Errorf("failed to open csv file: %w", err)
	}
	defer f.Close()

	reader := csv.NewReader(f)
	reader.FieldsPerRecord = -1
	header, err := reader.Read()
	if err != nil {
		return nil, fmt.Errorf("failed to read csv header: %w", err)
	}
	return missingColumns(resolveColumns(header)), nil
}

// countRows 预扫描统计数据行数（不含表头），内容读完即弃
// 多一次顺序读换来精确的进度分母
func countRows(filePath string) (int, error) {
	f, err := os.Open(filePath)
	if err != nil {
		return 0, fmt.Errorf("csv file not found: %s", filePath)
	}
	defer f.Close()

	reader := csv.NewReader(f)
	reader.FieldsPerRecord = -1
	if _, err := reader.Read(); err != nil {
		if err == io.EOF {
			return 0, nil
		}
		return 0, fmt.Errorf("failed to read csv header: %w", err)
	}

	total := 0
	for {
		_, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return 0, fmt.Errorf("failed to scan csv rows: %w", err)
		}
		total++
	}
	return total, nil
}

// normalizeRow 把一条原始记录映射成规范化行，缺列取空值
func normalizeRow(cols map[string]int, record []string) productRow {
	get := func(name string) string {
		if i, ok := cols[name]; ok && i < len(record) {
			return record[i]
		}
		return ""
	}
	return productRow{
		Sku:         normalizeSku(get("sku")),
		Name:        strings.TrimSpace(get("name")),
		Description: strings.TrimSpace(get(descriptionColumn)),
	}
}

// dedupBatch 批内按 sku 去重，后出现的覆盖先出现的（last-write-wins）
// sku 或 name 为空的行是跳过行，不进结果也不计入 processed_rows
// 原子的多行 upsert 同一条语句不能命中两次冲突键，所以必须先收敛到每键一行
func dedupBatch(batch []productRow) []productRow {
	deduped := make(map[string]productRow, len(batch))
	order := make([]string, 0, len(batch))
	for _, row := range batch {
		if row.Sku == "" || row.Name == "" {
			continue
		}
		if _, seen := deduped[row.Sku]; !seen {
			order = append(order, row.Sku)
		}
		deduped[row.Sku] = row
	}
	result := make([]productRow, 0, len(deduped))
	for _, sku := range order {
		result = append(result, deduped[sku])
	}
	return result
}

// computeProgress 进度百分比：floor(processed/total*100)，上限 100，total 未知按 0 处理
func computeProgress(processed, total int) int {
	if total <= 0 {
		return 0
	}
	progress := processed * 100 / total
	if progress > 100 {
		progress = 100
	}
	return progress
}

// computeETA 按已观测速率估算剩余秒数，速率未形成时不发布
func computeETA(processed, total int, elapsed time.Duration) *int {
	if total <= 0 || processed <= 0 {
		return nil
	}
	secs := elapsed.Seconds()
	if secs <= 0 {
		return nil
	}
	rate := float64(processed) / secs
	eta := int(math.Floor(float64(total-processed) / rate))
	return &eta
}
