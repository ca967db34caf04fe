package internal

import (
	"sync"

	"github.com/ethaniccc/float32-cube/cube"
)

// BoxListPool holds reusable bounding box slices for broad phase queries.
var BoxListPool = sync.Pool{
	New: func() any {
		s := make([]cube.BBox, 0, 32)
		return &s
	},
}

// GetBoxList retrieves an empty bounding box slice from the pool.
func GetBoxList() *[]cube.BBox {
	list := BoxListPool.Get().(*[]cube.BBox)
	*list = (*list)[:0]
	return list
}

// PutBoxList returns a bounding box slice to the pool.
func PutBoxList(list *[]cube.BBox) {
	if list != nil {
		*list = (*list)[:0]
		BoxListPool.Put(list)
	}
}
