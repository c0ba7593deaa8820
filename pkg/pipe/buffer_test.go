package pipe

import (
	"io"
	"strings"
	"testing"
	"time"
)

func TestNewBuffer_WriteAndRead(t *testing.T) {
	const max = 10
	buf, err := NewBuffer(max)
	if err != nil {
		t.Fatalf("NewBuffer error: %v", err)
	}
	defer buf.W.Close()

	input := "hello"
	n, err := buf.W.Write([]byte(input))
	if err != nil {
		t.Fatalf("Write error: %v", err)
	}
	if n != len(input) {
		t.Errorf("Write bytes = %d, want %d", n, len(input))
	}
	buf.W.Close()
	<-buf.Done

	got := buf.Buffer.String()
	if got != input {
		t.Errorf("Buffer content = %q, want %q", got, input)
	}
	if buf.Truncated() {
		t.Errorf("Truncated() = true for %d bytes with max %d", len(input), max)
	}
}

func TestNewBuffer_MaxBytes(t *testing.T) {
	const max = 5
	buf, err := NewBuffer(max)
	if err != nil {
		t.Fatalf("NewBuffer error: %v", err)
	}
	defer buf.W.Close()

	input := "toolonginput"
	_, err = io.Copy(buf.W, strings.NewReader(input))
	if err != nil {
		t.Fatalf("Copy error: %v", err)
	}
	buf.W.Close()
	<-buf.Done

	got := buf.Buffer.String()
	if len(got) != max+1 {
		t.Errorf("Buffer length = %d, want %d", len(got), max+1)
	}
	if got != input[:max+1] {
		t.Errorf("Buffer content = %q, want %q", got, input[:max+1])
	}
	if !buf.Truncated() {
		t.Error("Truncated() = false after writing past max")
	}
}

func TestBuffer_String(t *testing.T) {
	const max = 8
	buf, err := NewBuffer(max)
	if err != nil {
		t.Fatalf("NewBuffer error: %v", err)
	}
	defer buf.W.Close()

	_, _ = buf.W.Write([]byte("abc"))
	buf.W.Close()
	<-buf.Done

	want := "Buffer[3/8]"
	if buf.String() != want {
		t.Errorf("String() = %q, want %q", buf.String(), want)
	}
}

func TestNewBuffer_DoneCloses(t *testing.T) {
	const max = 4
	buf, err := NewBuffer(max)
	if err != nil {
		t.Fatalf("NewBuffer error: %v", err)
	}
	defer buf.W.Close()

	go func() {
		_, _ = buf.W.Write([]byte("test"))
		buf.W.Close()
	}()

	select {
	case <-buf.Done:
	case <-time.After(1 * time.Second):
		t.Fatal("timeout waiting for Done channel")
	}
}
