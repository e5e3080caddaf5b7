package utils

import (
	"bufio"
	"encoding/binary"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
)

// ReadSamples loads a mono track. Files ending in .txt hold one decimal
// sample per line; anything else is raw little endian float32.
func ReadSamples(filename string) ([]float32, error) {
	if isText(filename) {
		return ReadTxt(filename)
	}
	return ReadBinary[float32](filename)
}

func WriteSamples(filename string, samples []float32) error {
	if isText(filename) {
		return WriteTxt(filename, samples)
	}
	return WriteBinary(filename, samples)
}

func isText(filename string) bool {
	return strings.EqualFold(filepath.Ext(filename), ".txt")
}

func ReadBinary[T any](filename string) ([]T, error) {
	file, err := os.Open(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to open file: %w", err)
	}
	defer file.Close()

	fileInfo, err := file.Stat()
	if err != nil {
		return nil, fmt.Errorf("failed to get file info: %w", err)
	}

	var zero T
	size := binary.Size(zero)
	if fileInfo.Size()%int64(size) != 0 {
		return nil, fmt.Errorf("%s: size %d is not a multiple of %d", filename, fileInfo.Size(), size)
	}
	data := make([]T, fileInfo.Size()/int64(size))
	if err := binary.Read(file, binary.LittleEndian, data); err != nil {
		return nil, fmt.Errorf("failed to read file: %w", err)
	}
	return data, nil
}

func WriteBinary[T any](filename string, data []T) error {
	file, err := os.Create(filename)
	if err != nil {
		return fmt.Errorf("failed to create file: %w", err)
	}
	defer file.Close()

	if err := binary.Write(file, binary.LittleEndian, data); err != nil {
		return fmt.Errorf("failed to write file: %w", err)
	}
	return nil
}

func ReadTxt(filename string) ([]float32, error) {
	file, err := os.Open(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to open file: %w", err)
	}
	defer file.Close()

	var data []float32
	scanner := bufio.NewScanner(file)
	for line := 1; scanner.Scan(); line++ {
		text := strings.TrimSpace(scanner.Text())
		if text == "" {
			continue
		}
		v, err := strconv.ParseFloat(text, 32)
		if err != nil {
			return nil, fmt.Errorf("%s:%d: %w", filename, line, err)
		}
		data = append(data, float32(v))
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("failed to read file: %w", err)
	}
	return data, nil
}

func WriteTxt(filename string, data []float32) error {
	file, err := os.Create(filename)
	if err != nil {
		return fmt.Errorf("failed to create file: %w", err)
	}
	defer file.Close()

	w := bufio.NewWriter(file)
	for _, v := range data {
		w.WriteString(strconv.FormatFloat(float64(v), 'g', -1, 32))
		w.WriteByte('\n')
	}
	if err := w.Flush(); err != nil {
		return fmt.Errorf("failed to write file: %w", err)
	}
	return nil
}
