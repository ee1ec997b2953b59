package util_month

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/newreleases/admin-console/domain/domain_release/release_models"
	"golang.org/x/text/cases"
)

var (
	ErrMonthOutOfRange = errors.New("month must be between 1 and 12")
	ErrYearOutOfRange  = errors.New("year must be between 1900 and 2100")
	ErrInvalidDate     = errors.New("invalid month_date format, expected YYYY-MM-DD")
)

// 各语言月份缩写
var monthNames = map[release_models.Lang][12]string{
	release_models.LangES: {"Ene", "Feb", "Mar", "Abr", "May", "Jun", "Jul", "Ago", "Sep", "Oct", "Nov", "Dic"},
	release_models.LangEN: {"Jan", "Feb", "Mar", "Apr", "May", "Jun", "Jul", "Aug", "Sep", "Oct", "Nov", "Dec"},
	release_models.LangPT: {"Jan", "Fev", "Mar", "Abr", "Mai", "Jun", "Jul", "Ago", "Set", "Out", "Nov", "Dez"},
}

const (
	minLabelYear = 1900
	maxLabelYear = 2100
	yearSpan     = 3
)

// Encode 生成 YYYY-MM-01，年份范围与 ParseLabel 一致
func Encode(year, month int) (string, error) {
	if month < 1 || month > 12 {
		return "", fmt.Errorf("%w: %d", ErrMonthOutOfRange, month)
	}
	if year < minLabelYear || year > maxLabelYear {
		return "", fmt.Errorf("%w: %d", ErrYearOutOfRange, year)
	}
	return fmt.Sprintf("%04d-%02d-01", year, month), nil
}

// Decode 解析 month_date，只取前两段
func Decode(value string) (int, int, error) {
	parts := strings.Split(strings.TrimSpace(value), "-")
	if len(parts) < 2 {
		return 0, 0, fmt.Errorf("%w: %q", ErrInvalidDate, value)
	}
	year, err := strconv.Atoi(parts[0])
	if err != nil {
		return 0, 0, fmt.Errorf("%w: %q", ErrInvalidDate, value)
	}
	month, err := strconv.Atoi(parts[1])
	if err != nil || month < 1 || month > 12 {
		return 0, 0, fmt.Errorf("%w: %q", ErrInvalidDate, value)
	}
	return year, month, nil
}

// Label 例如 "Feb 2026"
func Label(lang release_models.Lang, year, month int) (string, error) {
	if month < 1 || month > 12 {
		return "", fmt.Errorf("%w: %d", ErrMonthOutOfRange, month)
	}
	names, ok := monthNames[lang]
	if !ok {
		return "", fmt.Errorf("unsupported language: %q", lang)
	}
	return fmt.Sprintf("%s %d", names[month-1], year), nil
}

// ParseLabel 从旧数据的 month_label 反推年月，依次尝试 ES、EN、PT
func ParseLabel(label string) (int, int, bool) {
	parts := strings.Fields(label)
	if len(parts) != 2 {
		return 0, 0, false
	}

	year, err := strconv.Atoi(parts[1])
	if err != nil || year < minLabelYear || year > maxLabelYear {
		return 0, 0, false
	}

	fold := cases.Fold()
	token := fold.String(parts[0])
	for _, lang := range release_models.Langs {
		names := monthNames[lang]
		for i, name := range names {
			if fold.String(name) == token {
				return year, i + 1, true
			}
		}
	}
	return 0, 0, false
}

// AvailableYears 当前年份前后三年，降序
func AvailableYears(now time.Time) []int {
	current := now.Year()
	years := make([]int, 0, 2*yearSpan+1)
	for y := current + yearSpan; y >= current-yearSpan; y-- {
		years = append(years, y)
	}
	return years
}

func MonthNames(lang release_models.Lang) []string {
	names, ok := monthNames[lang]
	if !ok {
		return nil
	}
	out := make([]string, len(names))
	copy(out, names[:])
	return out
}

// Resolve 编辑表单加载年月，month_date 优先，回退到 month_label
func Resolve(monthDate, monthLabel string) (int, int, bool) {
	if monthDate != "" {
		if year, month, err := Decode(monthDate); err == nil {
			return year, month, true
		}
	}
	return ParseLabel(monthLabel)
}
