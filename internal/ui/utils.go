package ui

import (
	"bufio"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/forest-guardian/landsat-lst/internal/pipeline"
)

// Colors for consistent UI
const (
	ColorRed    = "\033[31m"
	ColorGreen  = "\033[32m"
	ColorYellow = "\033[33m"
	ColorBlue   = "\033[34m"
	ColorReset  = "\033[0m"
)

var stdin = bufio.NewReader(os.Stdin)

// PrintWarning displays a warning message with consistent formatting
func PrintWarning(message string) {
	fmt.Printf("%s\nWarning:%s\n", ColorYellow, ColorReset)
	fmt.Printf("%s%s%s\n", ColorYellow, message, ColorReset)
}

// PrintError displays an error message with consistent formatting
func PrintError(message string) {
	fmt.Printf("\n%sError: %s%s\n", ColorRed, message, ColorReset)
}

// PrintSuccess displays a success message with consistent formatting
func PrintSuccess(message string) {
	fmt.Printf("\n%s%s%s\n", ColorGreen, message, ColorReset)
}

func PrintInfo(message string) {
	fmt.Printf("%s%s%s", ColorBlue, message, ColorReset)
}

// ReadString reads a trimmed line from stdin
func ReadString(prompt string) string {
	PrintInfo(prompt)
	input, _ := stdin.ReadString('\n')
	return strings.TrimSpace(input)
}

// ReadInt reads an integer in [min, max]
func ReadInt(prompt string, min, max int) (int, error) {
	input := ReadString(prompt)
	value, err := strconv.Atoi(input)
	if err != nil {
		return 0, fmt.Errorf("invalid number: %s", input)
	}
	if value < min || value > max {
		return 0, fmt.Errorf("value must be between %d and %d", min, max)
	}
	return value, nil
}

// ReadYesNo treats anything starting with y as yes
func ReadYesNo(prompt string) bool {
	answer := strings.ToLower(ReadString(prompt + " (y/N): "))
	return strings.HasPrefix(answer, "y")
}

// ReadProducts asks for a product list, defaulting to every product.
func ReadProducts() (pipeline.ProductSet, error) {
	input := ReadString(fmt.Sprintf("Enter the products separated by ';' %v (empty for all): ", pipeline.AllProducts))
	if input == "" {
		return pipeline.NewProductSet(pipeline.AllProducts...), nil
	}
	return pipeline.ParseProducts(input)
}

// SelectOption prints options as a numbered list and returns the chosen one.
// An empty list is an error.
func SelectOption(title string, options []string) (string, error) {
	if len(options) == 0 {
		return "", fmt.Errorf("no %s available", strings.ToLower(title))
	}
	fmt.Printf("%s\n%s:%s\n", ColorGreen, title, ColorReset)
	for i, o := range options {
		fmt.Printf("%s%d. %s%s\n", ColorGreen, i+1, o, ColorReset)
	}
	choice, err := ReadInt("Enter the number of your choice: ", 1, len(options))
	if err != nil {
		return "", err
	}
	return options[choice-1], nil
}
