// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

// QueryResult is the output of one executed query: the column names in
// select-list order and the rows in the order the database returned them.
// Values are driver values with []byte converted to string, decimals carried
// as json.Number and non-finite floats spelled "NaN", "Infinity" or
// "-Infinity".
type QueryResult struct {
	Columns []string `json:"columns"`
	Rows    [][]any  `json:"rows"`
}

// GradeReport is the outcome of comparing a submitted query's output with the
// output of an exercise's reference query. It is serialized as the JSON body
// of the submit endpoint.
//
// When either query fails, Message starts with "Error: ", CorrectQuery is
// empty and both results are nil.
type GradeReport struct {
	Message      string `json:"message"`
	Correct      bool   `json:"correct"`
	UserQuery    string `json:"user_query"`
	CorrectQuery string `json:"correct_query"`

	UserResult    [][]any `json:"user_result"`
	CorrectResult [][]any `json:"correct_result"`

	UserColumns    []string `json:"user_columns,omitempty"`
	CorrectColumns []string `json:"correct_columns,omitempty"`
}
