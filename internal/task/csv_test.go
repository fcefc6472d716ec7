package task

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func writeTempCSV(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "import.csv")
	err := os.WriteFile(path, []byte(content), 0o644)
	assert.NoError(t, err)
	return path
}

func TestNormalizeSku(t *testing.T) {
	assert.Equal(t, "abc-001", normalizeSku("  ABC-001  "))
	assert.Equal(t, "abc", normalizeSku("abc"))
	assert.Equal(t, "", normalizeSku("   "))
}

func TestResolveColumns(t *testing.T) {
	cols := resolveColumns([]string{" SKU ", "Name", "description", "extra", ""})
	assert.Equal(t, 0, cols["sku"])
	assert.Equal(t, 1, cols["name"])
	assert.Equal(t, 2, cols["description"])
	assert.Equal(t, 3, cols["extra"])
	_, ok := cols[""]
	assert.False(t, ok)
}

func TestResolveColumnsDuplicateHeaderKeepsFirst(t *testing.T) {
	cols := resolveColumns([]string{"sku", "name", "SKU"})
	assert.Equal(t, 0, cols["sku"])
}

func TestMissingColumns(t *testing.T) {
	assert.Empty(t, missingColumns(resolveColumns([]string{"sku", "name"})))
	// description 可选，缺了不算错
	assert.Empty(t, missingColumns(resolveColumns([]string{"sku", "name", "other"})))
	assert.Equal(t, []string{"name"}, missingColumns(resolveColumns([]string{"sku", "description"})))
	assert.Equal(t, []string{"sku", "name"}, missingColumns(resolveColumns([]string{"foo", "bar"})))
}

func TestValidateCSVHeader(t *testing.T) {
	path := writeTempCSV(t, "SKU,Name,Description\na,b,c\n")
	missing, err := ValidateCSVHeader(path)
	assert.NoError(t, err)
	assert.Empty(t, missing)

	path = writeTempCSV(t, "sku,description\na,c\n")
	missing, err = ValidateCSVHeader(path)
	assert.NoError(t, err)
	assert.Equal(t, []string{"name"}, missing)

	_, err = ValidateCSVHeader(filepath.Join(t.TempDir(), "does-not-exist.csv"))
	assert.Error(t, err)
}

func TestCountRows(t *testing.T) {
	path := writeTempCSV(t, "sku,name\na,1\nb,2\nc,3\n")
	total, err := countRows(path)
	assert.NoError(t, err)
	assert.Equal(t, 3, total)

	// 只有表头
	path = writeTempCSV(t, "sku,name\n")
	total, err = countRows(path)
	assert.NoError(t, err)
	assert.Equal(t, 0, total)

	// 空文件
	path = writeTempCSV(t, "")
	total, err = countRows(path)
	assert.NoError(t, err)
	assert.Equal(t, 0, total)

	_, err = countRows(filepath.Join(t.TempDir(), "missing.csv"))
	assert.Error(t, err)
}

func TestNormalizeRow(t *testing.T) {
	cols := resolveColumns([]string{"sku", "name", "description"})
	row := normalizeRow(cols, []string{" ABC ", " Widget ", " A thing "})
	assert.Equal(t, "abc", row.Sku)
	assert.Equal(t, "Widget", row.Name)
	assert.Equal(t, "A thing", row.Description)

	// 短行缺列取空值
	row = normalizeRow(cols, []string{"x"})
	assert.Equal(t, "x", row.Sku)
	assert.Equal(t, "", row.Name)
	assert.Equal(t, "", row.Description)
}

func TestDedupBatchLastWriteWins(t *testing.T) {
	batch := []productRow{
		{Sku: "a", Name: "first", Description: "d1"},
		{Sku: "b", Name: "other"},
		{Sku: "a", Name: "second", Description: "d2"},
	}
	deduped := dedupBatch(batch)
	assert.Len(t, deduped, 2)
	// 保留首次出现的顺序，但内容取最后一次出现
	assert.Equal(t, "a", deduped[0].Sku)
	assert.Equal(t, "second", deduped[0].Name)
	assert.Equal(t, "d2", deduped[0].Description)
	assert.Equal(t, "b", deduped[1].Sku)
}

func TestDedupBatchSkipsEmptySkuOrName(t *testing.T) {
	batch := []productRow{
		{Sku: "", Name: "no sku"},
		{Sku: "x", Name: ""},
		{Sku: "y", Name: "kept"},
	}
	deduped := dedupBatch(batch)
	assert.Len(t, deduped, 1)
	assert.Equal(t, "y", deduped[0].Sku)
}

func TestComputeProgress(t *testing.T) {
	assert.Equal(t, 0, computeProgress(0, 100))
	assert.Equal(t, 50, computeProgress(500, 1000))
	// floor 语义
	assert.Equal(t, 33, computeProgress(1, 3))
	assert.Equal(t, 100, computeProgress(200, 100))
	assert.Equal(t, 0, computeProgress(10, 0))
}

func TestComputeETA(t *testing.T) {
	eta := computeETA(500, 1000, 10*time.Second)
	assert.NotNil(t, eta)
	assert.Equal(t, 10, *eta)

	assert.Nil(t, computeETA(0, 1000, 10*time.Second))
	assert.Nil(t, computeETA(500, 0, 10*time.Second))
	assert.Nil(t, computeETA(500, 1000, 0))

	eta = computeETA(1000, 1000, 10*time.Second)
	assert.NotNil(t, eta)
	assert.Equal(t, 0, *eta)
}
