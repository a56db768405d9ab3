package database

import (
	"context"
	"errors"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/xiebiao/bookcatalog/internal/domain/book"
	apperrors "github.com/xiebiao/bookcatalog/pkg/errors"
)

// bookRepository 图书仓储实现
// 设计说明:
// 1. 实现domain/book/repository.go定义的接口
// 2. 聚合视图(likes_count、评分、读者)在这里用分组查询计算
type bookRepository struct {
	db *gorm.DB
	tx *TxManager
}

// NewBookRepository 创建图书仓储
func NewBookRepository(db *gorm.DB, tx *TxManager) book.Repository {
	return &bookRepository{db: db, tx: tx}
}

// Create 创建图书
func (r *bookRepository) Create(ctx context.Context, b *book.Book) error {
	model := &BookModel{
		Name:    b.Name,
		Price:   b.Price,
		Author:  b.Author,
		OwnerID: b.OwnerID,
	}

	if err := getDB(ctx, r.db).Create(model).Error; err != nil {
		return apperrors.Wrap(err, "创建图书失败")
	}

	b.ID = model.ID
	b.CreatedAt = model.CreatedAt
	b.UpdatedAt = model.UpdatedAt
	return nil
}

// FindByID 根据ID查找图书
func (r *bookRepository) FindByID(ctx context.Context, id uint) (*book.Book, error) {
	var model BookModel
	if err := getDB(ctx, r.db).First(&model, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, book.ErrBookNotFound
		}
		return nil, apperrors.Wrap(err, "查询图书失败")
	}
	return toBookEntity(&model), nil
}

// Update 更新图书信息
// 只更新name、price、author,所有者不会被修改
func (r *bookRepository) Update(ctx context.Context, b *book.Book) error {
	result := getDB(ctx, r.db).Model(&BookModel{ID: b.ID}).Updates(map[string]interface{}{
		"name":       b.Name,
		"price":      b.Price,
		"author":     b.Author,
		"updated_at": b.UpdatedAt,
	})
	if result.Error != nil {
		return apperrors.Wrap(result.Error, "更新图书失败")
	}
	if result.RowsAffected == 0 {
		return book.ErrBookNotFound
	}
	return nil
}

// Delete 删除图书
// 同一事务中先删除关系记录再删除图书
func (r *bookRepository) Delete(ctx context.Context, id uint) error {
	return r.tx.Transaction(ctx, func(ctx context.Context) error {
		db := getDB(ctx, r.db)

		if err := db.Where("book_id = ?", id).Delete(&RelationModel{}).Error; err != nil {
			return apperrors.Wrap(err, "删除图书关系失败")
		}

		result := db.Delete(&BookModel{}, id)
		if result.Error != nil {
			return apperrors.Wrap(result.Error, "删除图书失败")
		}
		if result.RowsAffected == 0 {
			return book.ErrBookNotFound
		}
		return nil
	})
}

// viewRow 聚合查询结果行
type viewRow struct {
	ID         uint
	Name       string
	Price      int64
	Author     string
	OwnerID    *uint
	OwnerName  string
	LikesCount int64
	RateSum    int64
	RateCount  int64
}

// readerRow 读者查询结果行
type readerRow struct {
	BookID    uint
	FirstName string
	LastName  string
}

const viewColumns = `books.id, books.name, books.price, books.author, books.owner_id,
	COALESCE(owners.username, '') AS owner_name,
	COUNT(CASE WHEN r.liked THEN 1 END) AS likes_count,
	COALESCE(SUM(r.rate), 0) AS rate_sum,
	COUNT(r.rate) AS rate_count`

// viewQuery 聚合查询
// books LEFT JOIN 关系 LEFT JOIN 所有者,按图书分组
func (r *bookRepository) viewQuery(ctx context.Context) *gorm.DB {
	return getDB(ctx, r.db).
		Table("books").
		Select(viewColumns).
		Joins("LEFT JOIN user_book_relations r ON r.book_id = books.id").
		Joins("LEFT JOIN users owners ON owners.id = books.owner_id").
		Group("books.id, books.name, books.price, books.author, books.owner_id, owners.username")
}

// ListViews 查询聚合视图列表
// 1. 过滤:价格精确匹配,书名或作者包含搜索词
// 2. 排序:按ordering字段,最后按id保证稳定
// 3. 第二条SQL批量加载读者
func (r *bookRepository) ListViews(ctx context.Context, params book.ListParams) ([]*book.View, error) {
	query := r.viewQuery(ctx)

	if params.Price != nil {
		query = query.Where("books.price = ?", *params.Price)
	}
	if params.Search != "" {
		pattern := containsPattern(params.Search)
		query = query.Where("(LOWER(books.name) LIKE ? ESCAPE '!' OR LOWER(books.author) LIKE ? ESCAPE '!')", pattern, pattern)
	}

	for _, f := range params.Ordering {
		query = query.Order(clause.OrderByColumn{
			Column: clause.Column{Table: "books", Name: f.Field},
			Desc:   f.Desc,
		})
	}
	query = query.Order(clause.OrderByColumn{Column: clause.Column{Table: "books", Name: "id"}})

	var rows []viewRow
	if err := query.Scan(&rows).Error; err != nil {
		return nil, apperrors.Wrap(err, "查询图书列表失败")
	}

	views := make([]*book.View, 0, len(rows))
	for i := range rows {
		views = append(views, toView(&rows[i]))
	}

	if err := r.loadReaders(ctx, views); err != nil {
		return nil, err
	}
	return views, nil
}

// FindView 查询单本图书的聚合视图
func (r *bookRepository) FindView(ctx context.Context, id uint) (*book.View, error) {
	var rows []viewRow
	if err := r.viewQuery(ctx).Where("books.id = ?", id).Scan(&rows).Error; err != nil {
		return nil, apperrors.Wrap(err, "查询图书失败")
	}
	if len(rows) == 0 {
		return nil, book.ErrBookNotFound
	}

	view := toView(&rows[0])
	if err := r.loadReaders(ctx, []*book.View{view}); err != nil {
		return nil, err
	}
	return view, nil
}

// loadReaders 批量加载读者,按关系创建顺序
func (r *bookRepository) loadReaders(ctx context.Context, views []*book.View) error {
	if len(views) == 0 {
		return nil
	}

	byID := make(map[uint]*book.View, len(views))
	ids := make([]uint, 0, len(views))
	for _, v := range views {
		byID[v.ID] = v
		ids = append(ids, v.ID)
	}

	var rows []readerRow
	err := getDB(ctx, r.db).
		Table("user_book_relations r").
		Select("r.book_id, users.first_name, users.last_name").
		Joins("JOIN users ON users.id = r.user_id").
		Where("r.book_id IN ?", ids).
		Order("r.id").
		Scan(&rows).Error
	if err != nil {
		return apperrors.Wrap(err, "查询读者失败")
	}

	for _, row := range rows {
		v := byID[row.BookID]
		v.Readers = append(v.Readers, book.Reader{FirstName: row.FirstName, LastName: row.LastName})
	}
	return nil
}

// =========================================
// 辅助函数:模型转换
// =========================================

func toBookEntity(model *BookModel) *book.Book {
	return &book.Book{
		ID:        model.ID,
		Name:      model.Name,
		Price:     model.Price,
		Author:    model.Author,
		OwnerID:   model.OwnerID,
		CreatedAt: model.CreatedAt,
		UpdatedAt: model.UpdatedAt,
	}
}

func toView(row *viewRow) *book.View {
	return &book.View{
		Book: book.Book{
			ID:      row.ID,
			Name:    row.Name,
			Price:   row.Price,
			Author:  row.Author,
			OwnerID: row.OwnerID,
		},
		OwnerName:  row.OwnerName,
		LikesCount: row.LikesCount,
		RateSum:    row.RateSum,
		RateCount:  row.RateCount,
		Readers:    []book.Reader{},
	}
}
