// Package safe wraps gocv.Mat with lifetime checking so a released Mat is
// caught as an error instead of a crash in native code.
package safe

import (
	"fmt"
	"runtime"
	"sync/atomic"

	"gocv.io/x/gocv"
)

type Mat struct {
	mat   gocv.Mat
	valid int32
}

// FromMat takes ownership of an existing gocv Mat.
func FromMat(mat gocv.Mat) (*Mat, error) {
	if mat.Empty() {
		return nil, fmt.Errorf("source Mat is empty")
	}

	sm := &Mat{mat: mat, valid: 1}
	runtime.SetFinalizer(sm, (*Mat).finalize)
	return sm, nil
}

// NewMat allocates a Mat of the given shape.
func NewMat(rows, cols int, matType gocv.MatType) (*Mat, error) {
	if rows <= 0 || cols <= 0 {
		return nil, fmt.Errorf("invalid dimensions: %dx%d", cols, rows)
	}

	mat := gocv.NewMatWithSize(rows, cols, matType)
	if mat.Empty() {
		mat.Close()
		return nil, fmt.Errorf("failed to create Mat with size %dx%d", cols, rows)
	}

	return FromMat(mat)
}

func (sm *Mat) IsValid() bool {
	return atomic.LoadInt32(&sm.valid) == 1
}

func (sm *Mat) Rows() int {
	if !sm.IsValid() {
		return 0
	}
	return sm.mat.Rows()
}

func (sm *Mat) Cols() int {
	if !sm.IsValid() {
		return 0
	}
	return sm.mat.Cols()
}

func (sm *Mat) Channels() int {
	if !sm.IsValid() {
		return 0
	}
	return sm.mat.Channels()
}

func (sm *Mat) Type() gocv.MatType {
	if !sm.IsValid() {
		return gocv.MatTypeCV8UC1
	}
	return sm.mat.Type()
}

// Get exposes the underlying gocv Mat for OpenCV calls. The caller must
// not Close it; ownership stays with the wrapper.
func (sm *Mat) Get() (gocv.Mat, error) {
	if !sm.IsValid() {
		return gocv.Mat{}, fmt.Errorf("Mat has been released")
	}
	return sm.mat, nil
}

func (sm *Mat) Close() {
	if atomic.CompareAndSwapInt32(&sm.valid, 1, 0) {
		if !sm.mat.Empty() {
			sm.mat.Close()
		}
		runtime.SetFinalizer(sm, nil)
	}
}

// finalize is the garbage collector's last-resort cleanup when Close was
// never called.
func (sm *Mat) finalize() {
	sm.Close()
}
