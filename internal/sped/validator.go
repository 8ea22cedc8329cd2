package sped

import (
	"fmt"
	"strconv"
	"strings"
)

// ValidationResult is the structured outcome of a file validation. Validation
// never fails with an error: malformed input is reported inside the result.
type ValidationResult struct {
	IsValid      bool     `json:"is_valid"`
	Errors       []string `json:"errors"`
	Warnings     []string `json:"warnings"`
	TotalRecords int      `json:"total_records"`
	TotalBlocks  int      `json:"total_blocks"`
}

type parsedRecord struct {
	lineNo int
	code   string
	fields []string
}

// Validate re-parses exported content and cross-checks its structural
// self-description: delimiter bounding, mandatory records, block and file
// counters, and the record-type histogram.
func Validate(content string) ValidationResult {
	result := ValidationResult{Errors: []string{}, Warnings: []string{}}

	if strings.TrimSpace(content) == "" {
		result.Errors = append(result.Errors, "empty content")
		return result
	}

	lines := strings.Split(strings.TrimRight(content, "\n"), "\n")
	records := make([]parsedRecord, 0, len(lines))

	for i, line := range lines {
		record, err := parseLine(i+1, line)
		if err != "" {
			result.Errors = append(result.Errors, err)
			continue
		}
		records = append(records, record)
	}

	result.TotalRecords = len(records)
	if len(records) == 0 {
		result.Errors = append(result.Errors, "no parseable records")
		return result
	}

	typeCounts := make(map[string]int)
	blockCounts := make(map[byte]int)
	for _, record := range records {
		typeCounts[record.code]++
		blockCounts[record.code[0]]++
	}
	result.TotalBlocks = len(blockCounts)

	if records[0].code != RecOpening {
		result.Errors = append(result.Errors, fmt.Sprintf("first record must be %s, found %s", RecOpening, records[0].code))
	}
	if records[len(records)-1].code != RecClosing {
		result.Errors = append(result.Errors, fmt.Sprintf("last record must be %s, found %s", RecClosing, records[len(records)-1].code))
	}

	checkBlockStructure(&result, typeCounts, blockCounts)
	checkExpectedBlocks(&result, records, blockCounts)
	checkCounters(&result, records, typeCounts, blockCounts)

	result.IsValid = len(result.Errors) == 0
	return result
}

// parseLine checks delimiter bounding and splits a record. The returned error
// string is empty on success.
func parseLine(lineNo int, line string) (parsedRecord, string) {
	if len(line) < 2 || !strings.HasPrefix(line, Delimiter) || !strings.HasSuffix(line, Delimiter) {
		return parsedRecord{}, fmt.Sprintf("line %d: record is not delimiter-bounded", lineNo)
	}

	parts := strings.Split(line[1:len(line)-1], Delimiter)
	if len(parts) == 0 || parts[0] == "" {
		return parsedRecord{}, fmt.Sprintf("line %d: missing record type code", lineNo)
	}

	return parsedRecord{lineNo: lineNo, code: parts[0], fields: parts[1:]}, ""
}

// checkBlockStructure requires an opener and a closer for every block that
// has records.
func checkBlockStructure(result *ValidationResult, typeCounts map[string]int, blockCounts map[byte]int) {
	for letter := range blockCounts {
		opener := string(letter) + "001"
		closer := string(letter) + "990"
		if typeCounts[opener] == 0 {
			result.Errors = append(result.Errors, fmt.Sprintf("block %c: missing opening record %s", letter, opener))
		}
		if typeCounts[closer] == 0 {
			result.Errors = append(result.Errors, fmt.Sprintf("block %c: missing closing record %s", letter, closer))
		}
	}

	if typeCounts[RecClosing] == 0 {
		result.Errors = append(result.Errors, "missing file closing record 9999")
	}
	if _, ok := blockCounts['9']; !ok {
		result.Errors = append(result.Errors, "missing closing block 9")
	}
}

// checkExpectedBlocks warns about data blocks the detected layout usually
// carries but this file omits. Optional blocks are warnings, not errors.
func checkExpectedBlocks(result *ValidationResult, records []parsedRecord, blockCounts map[byte]int) {
	if records[0].code != RecOpening {
		return
	}

	expected := []byte{'A', 'M'}
	if len(records[0].fields) > 0 && records[0].fields[0] == "LECD" {
		expected = []byte{'I', 'J'}
	}

	for _, letter := range expected {
		if _, ok := blockCounts[letter]; !ok {
			result.Warnings = append(result.Warnings, fmt.Sprintf("optional block %c missing", letter))
		}
	}
}

// checkCounters cross-checks every self-describing counter against the
// actual counted lines for its scope.
func checkCounters(result *ValidationResult, records []parsedRecord, typeCounts map[string]int, blockCounts map[byte]int) {
	histogram := make(map[string]int)
	sawHistogram := false

	for _, record := range records {
		switch {
		case record.code == RecTypeCount:
			sawHistogram = true
			if len(record.fields) < 2 {
				result.Errors = append(result.Errors, fmt.Sprintf("line %d: 9900 record missing fields", record.lineNo))
				continue
			}
			count, err := strconv.Atoi(record.fields[1])
			if err != nil {
				result.Errors = append(result.Errors, fmt.Sprintf("line %d: 9900 count is not numeric", record.lineNo))
				continue
			}
			histogram[record.fields[0]] = count

		case record.code == RecClosing:
			declared, ok := declaredCount(result, record)
			if ok && declared != len(records) {
				result.Errors = append(result.Errors,
					fmt.Sprintf("9999 declares %d lines, file has %d", declared, len(records)))
			}

		case strings.HasSuffix(record.code, "990"):
			declared, ok := declaredCount(result, record)
			if !ok {
				continue
			}
			actual := blockCounts[record.code[0]]
			if declared != actual {
				result.Errors = append(result.Errors,
					fmt.Sprintf("%s declares %d lines for block %c, counted %d", record.code, declared, record.code[0], actual))
			}
		}
	}

	if !sawHistogram {
		result.Errors = append(result.Errors, "missing record type histogram (9900)")
		return
	}

	for code, actual := range typeCounts {
		declared, ok := histogram[code]
		if !ok {
			result.Errors = append(result.Errors, fmt.Sprintf("record type %s has no 9900 histogram row", code))
			continue
		}
		if declared != actual {
			result.Errors = append(result.Errors,
				fmt.Sprintf("9900 declares %d records of type %s, counted %d", declared, code, actual))
		}
	}
	for code := range histogram {
		if typeCounts[code] == 0 {
			result.Errors = append(result.Errors, fmt.Sprintf("9900 lists absent record type %s", code))
		}
	}
}

func declaredCount(result *ValidationResult, record parsedRecord) (int, bool) {
	if len(record.fields) < 1 {
		result.Errors = append(result.Errors, fmt.Sprintf("line %d: %s record missing count field", record.lineNo, record.code))
		return 0, false
	}
	count, err := strconv.Atoi(record.fields[0])
	if err != nil {
		result.Errors = append(result.Errors, fmt.Sprintf("line %d: %s count is not numeric", record.lineNo, record.code))
		return 0, false
	}
	return count, true
}
