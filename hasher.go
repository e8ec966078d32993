package lptable

import (
	"hash/maphash"
	"reflect"
	"unsafe"

	"github.com/cespare/xxhash/v2"
)

// HashCoder is implemented by key types that supply their own hash code.
// Keys that compare equal must return the same hash code.
type HashCoder interface {
	HashCode() uint64
}

// defaultHasher picks a hash function for K once, at table creation.
//
// Integer kinds hash to their own value, so sequential ids fill
// consecutive slots. Strings go through xxhash. Types implementing
// HashCoder use their HashCode method. Everything else uses the runtime's
// hash for comparable values with a per-table seed.
func defaultHasher[K comparable]() func(key K) uint64 {
	var zeroK K
	if _, ok := any(zeroK).(HashCoder); ok {
		return func(key K) uint64 {
			return any(key).(HashCoder).HashCode()
		}
	}

	switch reflect.TypeOf((*K)(nil)).Elem().Kind() {
	case reflect.Int, reflect.Uint, reflect.Uintptr:
		return func(key K) uint64 {
			return uint64(*(*uint)(unsafe.Pointer(&key)))
		}
	case reflect.Int64, reflect.Uint64:
		return func(key K) uint64 {
			return *(*uint64)(unsafe.Pointer(&key))
		}
	case reflect.Int32, reflect.Uint32:
		return func(key K) uint64 {
			return uint64(*(*uint32)(unsafe.Pointer(&key)))
		}
	case reflect.Int16, reflect.Uint16:
		return func(key K) uint64 {
			return uint64(*(*uint16)(unsafe.Pointer(&key)))
		}
	case reflect.Int8, reflect.Uint8:
		return func(key K) uint64 {
			return uint64(*(*uint8)(unsafe.Pointer(&key)))
		}
	case reflect.Bool:
		return func(key K) uint64 {
			if *(*bool)(unsafe.Pointer(&key)) {
				return 1
			}
			return 0
		}
	case reflect.String:
		return func(key K) uint64 {
			return xxhash.Sum64String(*(*string)(unsafe.Pointer(&key)))
		}
	default:
		seed := maphash.MakeSeed()
		return func(key K) uint64 {
			return maphash.Comparable(seed, key)
		}
	}
}

// nilKeyCheck returns a predicate reporting nil keys for the nillable
// comparable kinds, or nil when K cannot hold nil.
func nilKeyCheck[K comparable]() func(key K) bool {
	switch reflect.TypeOf((*K)(nil)).Elem().Kind() {
	case reflect.Pointer, reflect.UnsafePointer, reflect.Chan:
		return func(key K) bool {
			return *(*unsafe.Pointer)(unsafe.Pointer(&key)) == nil
		}
	case reflect.Interface:
		return func(key K) bool {
			return any(key) == nil
		}
	default:
		return nil
	}
}
