package service

import "sync"

// ProductLocks 按商品 ID 串行化库存变更
// 同一商品任一时刻至多一个在途变更（入库、销售、校准），不同商品互不阻塞。
type ProductLocks struct {
	mu    sync.Mutex
	locks map[uint]*sync.Mutex
}

// NewProductLocks 创建商品锁表
func NewProductLocks() *ProductLocks {
	return &ProductLocks{locks: make(map[uint]*sync.Mutex)}
}

// Lock 锁定指定商品，返回解锁函数
func (l *ProductLocks) Lock(productID uint) func() {
	l.mu.Lock()
	lock, ok := l.locks[productID]
	if !ok {
		lock = &sync.Mutex{}
		l.locks[productID] = lock
	}
	l.mu.Unlock()

	lock.Lock()
	return lock.Unlock
}
