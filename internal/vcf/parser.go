package vcf

import (
	"bufio"
	"compress/gzip"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
)

// Parser reads records from a plain or gzipped VCF file.
type Parser struct {
	reader      *bufio.Reader
	file        *os.File
	gzipReader  *gzip.Reader
	lineNumber  int
	header      []string
	sampleNames []string
}

// NewParser opens path and reads its header.
// Gzip and BGZF files are detected by their magic bytes, not their extension.
func NewParser(path string) (*Parser, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open vcf file: %w", err)
	}

	p := &Parser{file: file}

	br := bufio.NewReader(file)
	magic, err := br.Peek(2)
	if err != nil && err != io.EOF {
		file.Close()
		return nil, fmt.Errorf("read vcf header: %w", err)
	}

	if len(magic) == 2 && magic[0] == 0x1f && magic[1] == 0x8b {
		p.gzipReader, err = gzip.NewReader(br)
		if err != nil {
			file.Close()
			return nil, fmt.Errorf("create gzip reader: %w", err)
		}
		p.reader = bufio.NewReader(p.gzipReader)
	} else {
		p.reader = br
	}

	if err := p.parseHeader(); err != nil {
		p.Close()
		return nil, err
	}
	return p, nil
}

func (p *Parser) parseHeader() error {
	for {
		line, err := p.reader.ReadString('\n')
		if err != nil && (err != io.EOF || line == "") {
			if err == io.EOF {
				break
			}
			return fmt.Errorf("read header: %w", err)
		}
		p.lineNumber++
		line = strings.TrimRight(line, "\r\n")

		switch {
		case strings.HasPrefix(line, "##"):
			p.header = append(p.header, line)
		case strings.HasPrefix(line, "#CHROM"):
			p.header = append(p.header, line)
			if fields := strings.Split(line, "\t"); len(fields) > 9 {
				p.sampleNames = fields[9:]
			}
			return nil
		default:
			return &ParseError{Line: p.lineNumber, Message: "expected #CHROM header line"}
		}

		if err == io.EOF {
			break
		}
	}

	if p.lineNumber == 0 {
		return &ParseError{Message: "empty file"}
	}
	return &ParseError{Line: p.lineNumber, Message: "no #CHROM header line found"}
}

// Next reads the next record. Returns nil, nil at end of file.
func (p *Parser) Next() (*Variant, error) {
	for {
		line, err := p.reader.ReadString('\n')
		if err != nil && (err != io.EOF || line == "") {
			if err == io.EOF {
				return nil, nil
			}
			return nil, fmt.Errorf("read variant line: %w", err)
		}
		p.lineNumber++

		line = strings.TrimRight(line, "\r\n")
		if line == "" {
			continue
		}
		return p.parseLine(line)
	}
}

func (p *Parser) parseLine(line string) (*Variant, error) {
	fields := strings.Split(line, "\t")
	if len(fields) < 8 {
		return nil, &ParseError{
			Line:    p.lineNumber,
			Message: fmt.Sprintf("expected at least 8 columns, found %d", len(fields)),
		}
	}

	pos, err := strconv.ParseInt(fields[1], 10, 64)
	if err != nil {
		return nil, &ParseError{
			Line:    p.lineNumber,
			Message: fmt.Sprintf("invalid position: %s", fields[1]),
		}
	}

	qual := 0.0
	if fields[5] != "." {
		qual, _ = strconv.ParseFloat(fields[5], 64)
	}

	v := &Variant{
		Chrom:  fields[0],
		Pos:    pos,
		Ref:    fields[3],
		Alt:    fields[4],
		Qual:   qual,
		Filter: fields[6],
	}
	if len(fields) > 8 {
		v.SampleColumns = strings.Join(fields[8:], "\t")
	}
	return v, nil
}

// Header returns the header lines, including #CHROM.
func (p *Parser) Header() []string {
	return p.header
}

// SampleNames returns the sample columns named in the #CHROM line.
func (p *Parser) SampleNames() []string {
	return p.sampleNames
}

// Close closes the parser and underlying file.
func (p *Parser) Close() error {
	if p.gzipReader != nil {
		p.gzipReader.Close()
	}
	if p.file != nil {
		return p.file.Close()
	}
	return nil
}

// ParseError represents an error during VCF parsing with line context.
// Line is 0 when the error is not tied to a line.
type ParseError struct {
	Line    int
	Message string
}

func (e *ParseError) Error() string {
	if e.Line == 0 {
		return "vcf parse error: " + e.Message
	}
	return fmt.Sprintf("vcf parse error at line %d: %s", e.Line, e.Message)
}
