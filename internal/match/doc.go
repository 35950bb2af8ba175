// Package match provides name normalization, Levenshtein distance calculation,
// and candidate ranking used for "did you mean" suggestions.
//
// Key functions:
//   - Normalize: folds identifiers for fuzzy matching
//   - Levenshtein, Similarity: edit distance and its 0-1 score
//   - RankCandidates: ranks known property names against a wanted one
//   - Suggest: returns the closest names above a similarity threshold
package match
