package faq

import (
	"fmt"
	"strconv"
	"strings"
)

const reviewFixedColumns = 3

// ReviewRecords renders rows in the wide review format, header first. The header has
// as many Question_i/Answer_i pairs as the widest row.
func ReviewRecords(rows []ReviewRow) [][]string {
	width := 0
	for _, row := range rows {
		if len(row.Items) > width {
			width = len(row.Items)
		}
	}

	header := []string{"URL", "Post ID", "Title"}
	for i := 1; i <= width; i++ {
		header = append(header, fmt.Sprintf("Question_%d", i), fmt.Sprintf("Answer_%d", i))
	}

	records := make([][]string, 0, len(rows)+1)
	records = append(records, header)
	for _, row := range rows {
		record := make([]string, len(header))
		record[0] = row.URL
		record[1] = strconv.FormatInt(row.ContentID, 10)
		record[2] = row.Title
		for i, item := range row.Items {
			record[reviewFixedColumns+2*i] = item.Question
			record[reviewFixedColumns+2*i+1] = item.Answer
		}
		records = append(records, record)
	}
	return records
}

// ReviewedEntry is one data row of a reviewed CSV.
type ReviewedEntry struct {
	URL       string
	ContentID int64
	Title     string
	Items     []Item
}

// ParseReviewRecord reads URL, content id, title and then question/answer pairs.
// Pairs with an empty question or answer are ignored. ContentID is zero when the id
// column is blank or not a positive number.
func ParseReviewRecord(record []string) ReviewedEntry {
	field := func(i int) string {
		if i < len(record) {
			return strings.TrimSpace(record[i])
		}
		return ""
	}
	entry := ReviewedEntry{URL: field(0), Title: field(2)}
	if id, err := strconv.ParseInt(field(1), 10, 64); err == nil && id > 0 {
		entry.ContentID = id
	}
	for i := reviewFixedColumns; i < len(record); i += 2 {
		q, a := field(i), field(i+1)
		if q == "" || a == "" {
			continue
		}
		entry.Items = append(entry.Items, Item{Question: q, Answer: a})
	}
	return entry
}

// IsReviewHeader reports whether record is the header row of a review CSV.
func IsReviewHeader(record []string) bool {
	return len(record) > 0 && strings.EqualFold(strings.TrimSpace(record[0]), "URL")
}
