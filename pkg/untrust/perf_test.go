package untrust_test

import (
	"testing"

	"github.com/flier/cssmatch/pkg/untrust"
)

func BenchmarkInput_Clone(b *testing.B) {
	data := make([]byte, 1000)
	for i := range data {
		data[i] = byte(i % 256)
	}
	input := untrust.Input(data)

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_ = input.Clone()
	}
}

func BenchmarkInput_AsSliceLessSafe(b *testing.B) {
	input := untrust.Input([]byte("hello world"))

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_ = input.AsSliceLessSafe()
	}
}

func BenchmarkReader_ReadBytes(b *testing.B) {
	data := make([]byte, b.N)
	for i := range data {
		data[i] = byte(i % 256)
	}
	input := untrust.Input(data)
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		r := untrust.NewReader(input)

		_, err := r.ReadBytes(len(data))
		if err != nil {
			b.Fatal(err)
		}
	}
}

func BenchmarkReadAll(b *testing.B) {
	data := make([]byte, 1000)
	for i := range data {
		data[i] = byte(i % 256)
	}
	input := untrust.Input(data)

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_, err := untrust.ReadAll(input, untrust.ErrEndOfInput, func(r *untrust.Reader) (string, error) {
			bytes, err := r.ReadBytes(len(data))
			if err != nil {
				return "", err
			}

			return string(bytes), nil
		})
		if err != nil {
			b.Fatal(err)
		}
	}
}
