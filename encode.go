package cashbook

import (
	"bufio"
	"bytes"
	"encoding/json"
	"fmt"
	"io"

	"github.com/shopspring/decimal"
)

func init() {
	decimal.MarshalJSONWithoutQuotes = true
}

// This file contains the journal format of a Book: a JSONL stream, one
// command per line, human readable and git friendly.
//
// The first line declares the book currency:
//
//	{"command":"init","currency":"EUR"}
//
// then every accepted record follows in insertion order:
//
//	{"command":"category","kind":"stock","label":"Tobacco"}
//	{"command":"close","id":"...","date":"2024-03-01","sales":1000,"card":400,"counted":590,"personnel":120}
//	{"command":"stock","id":"...","date":"2024-03-02","category":"Drinks","amount":250}
//	{"command":"fixed","id":"...","month":"2024-03","concept":"Rent","amount":1500}

// initCmd is the first line of a journal.
type initCmd struct {
	Command  CommandType `json:"command"`
	Currency string      `json:"currency"`
}

// EncodeBook writes the journal of b to w.
func EncodeBook(w io.Writer, b *Book) error {
	b.mu.RLock()
	defer b.mu.RUnlock()

	if err := encodeLine(w, initCmd{Command: CmdInit, Currency: b.currency}); err != nil {
		return err
	}
	for _, rec := range b.journal {
		if err := encodeLine(w, rec); err != nil {
			return err
		}
	}
	return nil
}

// encodeLine marshals a single record to JSON and writes it to w, followed by
// a newline.
func encodeLine(w io.Writer, rec any) error {
	data, err := json.Marshal(rec)
	if err != nil {
		return fmt.Errorf("failed to marshal %T: %w", rec, err)
	}
	if _, err := w.Write(append(data, '\n')); err != nil {
		return fmt.Errorf("failed to write %T: %w", rec, err)
	}
	return nil
}

// DecodeBook reads a journal from r and replays every record through the
// insert path of a new Book created with opts. The currency declared by the
// journal overrides any WithCurrency option.
//
// A journal that would not have been accepted record by record, like one
// holding two closings on the same day, fails with the offending line number.
func DecodeBook(r io.Reader, opts ...Option) (*Book, error) {
	scanner := bufio.NewScanner(r)
	var b *Book
	lineNum := 0
	for scanner.Scan() {
		lineNum++
		line := bytes.TrimSpace(scanner.Bytes())
		if len(line) == 0 {
			continue // Skip empty lines
		}

		var identifier struct {
			Command CommandType `json:"command"`
		}
		if err := json.Unmarshal(line, &identifier); err != nil {
			return nil, fmt.Errorf("line %d: could not identify command in %q: %w", lineNum, string(line), err)
		}

		if b == nil {
			var err error
			if identifier.Command == CmdInit {
				var head initCmd
				if err := json.Unmarshal(line, &head); err != nil {
					return nil, fmt.Errorf("line %d: %w", lineNum, err)
				}
				b, err = NewBook(append(opts[:len(opts):len(opts)], WithCurrency(head.Currency))...)
				if err != nil {
					return nil, fmt.Errorf("line %d: %w", lineNum, err)
				}
				continue
			}
			if b, err = NewBook(opts...); err != nil {
				return nil, err
			}
		}

		rec, err := decodeRecord(identifier.Command, line)
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", lineNum, err)
		}
		if err := b.replay(rec); err != nil {
			return nil, fmt.Errorf("line %d: %w", lineNum, err)
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("error reading from input: %w", err)
	}
	if b == nil {
		return NewBook(opts...)
	}
	return b, nil
}

func decodeRecord(cmd CommandType, line []byte) (any, error) {
	switch cmd {
	case CmdClose:
		var c DailyClosing
		err := json.Unmarshal(line, &c)
		return c, err
	case CmdStock:
		var p StockPurchase
		err := json.Unmarshal(line, &p)
		return p, err
	case CmdFixed:
		var f FixedCost
		err := json.Unmarshal(line, &f)
		return f, err
	case CmdCategory:
		var l Label
		err := json.Unmarshal(line, &l)
		return l, err
	case CmdInit:
		return nil, fmt.Errorf("init command must be the first line")
	default:
		return nil, fmt.Errorf("unknown command: %q", cmd)
	}
}
