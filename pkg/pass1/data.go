package pass1

import (
	"github.com/hadarhalfon/assembler/pkg/classify"
	"github.com/hadarhalfon/assembler/pkg/config"
	"github.com/hadarhalfon/assembler/pkg/diag"
	"github.com/hadarhalfon/assembler/pkg/encoding"
	"github.com/hadarhalfon/assembler/pkg/word"
)

// decodeData decodes a .data, .string, or .mat directive starting at i (the
// directive's leading '.'), appending words to words and returning the
// updated data counter.
func decodeData(line []rune, i int, dir classify.Directive, words *word.List, dc, ln int, cfg *config.Config, diags *diag.List) (int, bool) {
	switch dir {
	case classify.DirectiveData:
		return decodeDataValues(line, i+5, words, dc, ln, cfg, diags)
	case classify.DirectiveString:
		return decodeString(line, i+7, words, dc, ln, diags)
	case classify.DirectiveMat:
		return decodeMatrix(line, i+4, words, dc, ln, cfg, diags)
	}
	return dc, false
}

func decodeDataValues(line []rune, idx int, words *word.List, dc, ln int, cfg *config.Config, diags *diag.List) (int, bool) {
	if classify.ContainsInvalidCommas(line, idx) {
		diags.Errorf(diag.Structural, ln, idx+1, 1, commaErrorMessage(classify.GetCommaErrorKind(line, idx), ".data"))
		return dc, false
	}
	if !classify.IsLegalNumberList(line, classify.SkipSpaces(line, idx)) {
		diags.Errorf(diag.Structural, ln, idx+1, 1, "invalid .data initializer")
		return dc, false
	}
	idx = classify.SkipSpaces(line, idx)
	for !isEOL(line, idx) {
		start := idx
		for !isSep(line, idx) && at(line, idx) != ',' {
			idx++
		}
		n := classify.StrToInt(line[start:idx])
		words.Append(&word.Word{Value: encoding.EncodeN(n, 10), Kind: word.Data}, dc)
		dc++
		idx = classify.SkipSpaces(line, idx)
		if at(line, idx) == ',' {
			idx = classify.SkipSpaces(line, idx+1)
		}
	}
	return dc, true
}

func decodeString(line []rune, idx int, words *word.List, dc, ln int, diags *diag.List) (int, bool) {
	idx = classify.SkipSpaces(line, idx)
	if !classify.IsLegalString(line, idx) {
		diags.Errorf(diag.Structural, ln, idx+1, 1, "invalid .string literal")
		return dc, false
	}
	idx++ // skip opening quote
	for at(line, idx) != '"' {
		words.Append(&word.Word{Value: encoding.EncodeChar10(byte(at(line, idx))), Kind: word.Data}, dc)
		dc++
		idx++
	}
	words.Append(&word.Word{Value: 0, Kind: word.Data}, dc) // terminating null
	dc++
	return dc, true
}

func decodeMatrix(line []rune, idx int, words *word.List, dc, ln int, cfg *config.Config, diags *diag.List) (int, bool) {
	for at(line, idx) != '[' && !isEOL(line, idx) {
		idx++
	}
	dimsStart := idx
	if !classify.IsLegalMat(line, dimsStart) {
		diags.Errorf(diag.Structural, ln, dimsStart+1, 1, "invalid .mat declaration")
		return dc, false
	}
	rows, cols, dataStart := readMatDims(line, dimsStart)
	cells := rows * cols

	dataStart = classify.SkipSpaces(line, dataStart)
	if isEOL(line, dataStart) {
		if cfg.IsFeatureEnabled(config.FeatZeroFillMatrix) {
			for k := 0; k < cells; k++ {
				words.Append(&word.Word{Kind: word.Data}, dc)
				dc++
			}
		}
		return dc, true
	}

	if classify.ContainsInvalidCommas(line, dataStart) {
		diags.Errorf(diag.Structural, ln, dataStart+1, 1, commaErrorMessage(classify.GetCommaErrorKind(line, dataStart), ".mat"))
		return dc, false
	}

	var values []int
	idx = dataStart
	for !isEOL(line, idx) {
		start := idx
		for !isSep(line, idx) && at(line, idx) != ',' {
			idx++
		}
		values = append(values, classify.StrToInt(line[start:idx]))
		idx = classify.SkipSpaces(line, idx)
		if at(line, idx) == ',' {
			idx = classify.SkipSpaces(line, idx+1)
		}
	}

	if len(values) > cells {
		diags.Errorf(diag.Structural, ln, dataStart+1, 1, ".mat initializer supplies more values than it has cells")
		return dc, false
	}
	if len(values) < cells && cfg.IsWarningEnabled(config.WarnMatrixPartialFill) {
		diags.Warnf("matrix-partial-fill", ln, dataStart+1, 1, ".mat initializer supplies fewer values than it has cells")
	}

	limit := cells
	if !cfg.IsFeatureEnabled(config.FeatZeroFillMatrix) {
		limit = len(values)
	}
	for k := 0; k < limit; k++ {
		v := 0
		if k < len(values) {
			v = values[k]
		}
		words.Append(&word.Word{Value: encoding.EncodeN(v, 10), Kind: word.Data}, dc)
		dc++
	}
	return dc, true
}

// readMatDims reads the two bracketed dimensions starting at idx (pointing
// at the first '[') and returns rows, cols, and the index just past them.
func readMatDims(line []rune, idx int) (rows, cols, next int) {
	dims := [2]int{}
	for k := 0; k < 2; k++ {
		for at(line, idx) != '[' {
			idx++
		}
		idx++
		start := idx
		for at(line, idx) != ']' {
			idx++
		}
		dims[k] = classify.StrToInt(line[start:idx])
		idx++
	}
	return dims[0], dims[1], idx
}

func commaErrorMessage(kind classify.CommaError, directive string) string {
	switch kind {
	case classify.CommaLeading:
		return "leading comma in " + directive + " directive"
	case classify.CommaTrailing:
		return "trailing comma in " + directive + " directive"
	case classify.CommaDouble:
		return "double comma in " + directive + " directive"
	case classify.CommaMissing:
		return "missing comma between values in " + directive + " directive"
	default:
		return "invalid comma usage in " + directive + " directive"
	}
}
