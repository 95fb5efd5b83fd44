package sheets

import (
	"fmt"
	"strings"
	"unicode"

	"github.com/xuri/excelize/v2"
)

// DefaultSheetName is used when a worksheet has no display name.
const DefaultSheetName = "Sheet1"

// ColumnLettersToNumber converts a bijective base-26 column label to its
// 1-based index: A=1, Z=26, AA=27. Labels past XFD are rejected.
func ColumnLettersToNumber(letters string) (int, error) {
	if letters == "" || strings.IndexFunc(letters, notLetter) >= 0 {
		return 0, fmt.Errorf("invalid column label %q", letters)
	}
	n, err := excelize.ColumnNameToNumber(letters)
	if err != nil {
		return 0, fmt.Errorf("invalid column label %q: %w", letters, err)
	}
	return n, nil
}

// ColumnNumberToLetters is the inverse of ColumnLettersToNumber. There is no
// zero digit: 26 is "Z", 27 is "AA". Out-of-range input yields "".
func ColumnNumberToLetters(n int) string {
	letters, err := excelize.ColumnNumberToName(n)
	if err != nil {
		return ""
	}
	return letters
}

// ParseCellReference splits a reference like "C4" (or "$C$4") into its column
// letters and 1-based row number.
func ParseCellReference(ref string) (string, int, error) {
	ref = strings.ReplaceAll(strings.TrimSpace(ref), "$", "")
	col, row, err := excelize.CellNameToCoordinates(ref)
	if err != nil {
		return "", 0, fmt.Errorf("invalid cell reference %q: %w", ref, err)
	}
	return ColumnNumberToLetters(col), row, nil
}

// SplitRangeAddress breaks "Sheet1!A1:D4" into its sheet part (still quoted if
// it was), the start cell and the end cell. A single-cell address returns the
// same cell twice.
func SplitRangeAddress(address string) (sheet, start, end string) {
	cells := address
	if i := strings.LastIndex(address, "!"); i >= 0 {
		sheet, cells = address[:i], address[i+1:]
	}
	start, end, found := strings.Cut(cells, ":")
	if !found {
		end = start
	}
	return sheet, start, end
}

// BuildRangeAddress formats "<sheet>!<start>:<end>" for a block that begins at
// startColumn/startRow and spans columnCount columns and rowCount rows.
func BuildRangeAddress(sheetName, startColumn string, startRow, columnCount, rowCount int) (string, error) {
	startNum, err := ColumnLettersToNumber(startColumn)
	if err != nil {
		return "", err
	}
	if columnCount < 1 || rowCount < 1 {
		return "", fmt.Errorf("range must span at least one cell, got %dx%d", columnCount, rowCount)
	}
	first, err := excelize.CoordinatesToCellName(startNum, startRow)
	if err != nil {
		return "", err
	}
	last, err := excelize.CoordinatesToCellName(startNum+columnCount-1, startRow+rowCount-1)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%s!%s:%s", sheetName, first, last), nil
}

// QuoteSheetName makes a worksheet name safe for use in a range address.
func QuoteSheetName(name string) string {
	if name == "" {
		return DefaultSheetName
	}
	if !strings.ContainsAny(name, "'!") && strings.IndexFunc(name, unicode.IsSpace) < 0 {
		return name
	}
	return "'" + strings.ReplaceAll(name, "'", "''") + "'"
}

// UnquoteSheetName reverses QuoteSheetName.
func UnquoteSheetName(name string) string {
	if len(name) >= 2 && name[0] == '\'' && name[len(name)-1] == '\'' {
		return strings.ReplaceAll(name[1:len(name)-1], "''", "'")
	}
	return name
}

func notLetter(r rune) bool {
	return (r < 'A' || r > 'Z') && (r < 'a' || r > 'z')
}
