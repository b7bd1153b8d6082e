package stream

import (
	"bufio"
	"context"
	"io"
	"strings"
)

// Slice, et al., taken from:
// https://betterprogramming.pub/writing-a-stream-api-in-go-afbc3c4350e2

func Slice[T any](ctx context.Context, in []T) <-chan T {
	out := make(chan T)
	go func() {
		defer close(out)
		for _, element := range in {
			select {
			case <-ctx.Done():
				return
			case out <- element:
			}
		}
	}()
	return out
}

// Lines streams the trimmed, non-blank lines of in.
// A read error ends the stream and is sent on the error channel.
func Lines(ctx context.Context, in io.Reader) (<-chan string, <-chan error) {
	out := make(chan string)
	errs := make(chan error, 1)
	go func() {
		defer close(out)
		defer close(errs)
		scanner := bufio.NewScanner(in)
		for scanner.Scan() {
			line := strings.TrimSpace(scanner.Text())
			if line == "" || strings.HasPrefix(line, "#") {
				continue
			}
			select {
			case <-ctx.Done():
				return
			case out <- line:
			}
		}
		if err := scanner.Err(); err != nil {
			errs <- err
		}
	}()
	return out, errs
}

func Filter[T any](ctx context.Context, predicate func(T) bool, in <-chan T) <-chan T {
	out := make(chan T)
	go func() {
		defer close(out)
		for element := range in {
			if predicate(element) {
				select {
				case <-ctx.Done():
					return
				case out <- element:
				}
			}
		}
	}()
	return out
}

func Transform[I any, O any](ctx context.Context, transformer func(I) O, in <-chan I) <-chan O {
	out := make(chan O)
	go func() {
		defer close(out)
		for element := range in {
			select {
			case <-ctx.Done():
				return
			case out <- transformer(element):
			}
		}
	}()
	return out
}

// Batch groups elements into slices of up to size, sending what is
// left when the input closes.
func Batch[T any](ctx context.Context, size int, in <-chan T) <-chan []T {
	out := make(chan []T)
	go func() {
		defer close(out)
		batch := make([]T, 0, size)
		for element := range in {
			batch = append(batch, element)
			if len(batch) < size {
				continue
			}
			select {
			case <-ctx.Done():
				return
			case out <- batch:
			}
			batch = make([]T, 0, size)
		}
		if len(batch) == 0 {
			return
		}
		select {
		case <-ctx.Done():
		case out <- batch:
		}
	}()
	return out
}

func Collect[T any](ctx context.Context, in <-chan T) []T {
	out := make([]T, 0)
	for element := range in {
		select {
		case <-ctx.Done():
			return out
		default:
			out = append(out, element)
		}
	}
	return out
}
