package repository

import "context"

// 在庫カウンタの更新だけを約束。
type InventoryRepository interface {
	//在庫が足りるときだけサーバー側の式（stock = stock - ?）で減算する。
	//足りなければ何も変えずfalseを返す。
	DecreaseStockIfEnough(ctx context.Context, productID int64, qty int64) (bool, error)
}
