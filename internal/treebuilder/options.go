package treebuilder

import (
	"ewb/internal/diag"
)

const (
	DefaultMaxInputBytes = 64 << 20
	DefaultMaxDepth      = 512
	DefaultMaxNodes      = 1 << 21
)

type Options struct {
	Reporter diag.Reporter

	// Лимиты; 0 означает значение по умолчанию.
	MaxInputBytes  int64
	MaxDepth       uint
	MaxNodes       uint
	MaxTokenLength uint32

	// KeepComments сохраняет комментарии узлами KindComment.
	KeepComments bool
	// KeepDoctype сохраняет doctype узлом KindDoctype.
	KeepDoctype bool
	// NormalizeNFC приводит текст и значения атрибутов к NFC.
	NormalizeNFC bool
}

func (o Options) maxInputBytes() int64 {
	if o.MaxInputBytes <= 0 {
		return DefaultMaxInputBytes
	}
	return o.MaxInputBytes
}

func (o Options) maxDepth() uint {
	if o.MaxDepth == 0 {
		return DefaultMaxDepth
	}
	return o.MaxDepth
}

func (o Options) maxNodes() uint {
	if o.MaxNodes == 0 {
		return DefaultMaxNodes
	}
	return o.MaxNodes
}
