package utils

// boundaryRunes are the characters we prefer to break on, in the spirit of a
// recursive character splitter: paragraph/sentence ends first, then spaces.
var boundaryRunes = map[rune]bool{
	'\n': true, '。': true, '！': true, '？': true,
	'.': true, '!': true, '?': true, ' ': true,
}

// SplitText splits a long string into chunks of approximately 'chunkSize'
// characters with 'overlap' characters preserved across boundaries. Window
// ends are pulled back to the nearest sentence or whitespace boundary when
// one exists in the last fifth of the window, so words are rarely cut in
// half. Character counts are rune-based.
func SplitText(text string, chunkSize int, overlap int) []string {
	runes := []rune(text)
	totalLen := len(runes)
	if totalLen <= chunkSize {
		return []string{text}
	}

	step := chunkSize - overlap
	if step <= 0 {
		step = chunkSize // fallback if overlap >= chunkSize
	}

	var chunks []string
	for i := 0; i < totalLen; i += step {
		end := i + chunkSize
		if end >= totalLen {
			chunks = append(chunks, string(runes[i:totalLen]))
			break
		}

		end = adjustBoundary(runes, i, end)
		chunks = append(chunks, string(runes[i:end]))
	}

	return chunks
}

// adjustBoundary walks back from end looking for a boundary rune, but never
// further than a fifth of the window, so chunks stay near the target size.
func adjustBoundary(runes []rune, start, end int) int {
	limit := end - (end-start)/5
	for j := end - 1; j > limit; j-- {
		if boundaryRunes[runes[j]] {
			return j + 1
		}
	}
	return end
}
