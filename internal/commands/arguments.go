package commands

import (
	"fmt"
	"strconv"
)

// ParsePRNumber parses a positive PR number
func ParsePRNumber(arg string) (int, error) {
	prNumber, err := strconv.Atoi(arg)
	if err != nil {
		return 0, fmt.Errorf("invalid PR number: %w", err)
	}
	if prNumber <= 0 {
		return 0, fmt.Errorf("invalid PR number: %d is not positive", prNumber)
	}
	return prNumber, nil
}

// ParsePRNumberFromArgs parses the PR number from the first command argument
func ParsePRNumberFromArgs(args []string) (int, error) {
	if len(args) == 0 {
		return 0, fmt.Errorf("PR number is required")
	}
	return ParsePRNumber(args[0])
}
