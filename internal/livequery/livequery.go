// Package livequery cung cấp primitive "live query" trên MongoDB:
// subscribe một collection sẽ nhận snapshot ban đầu (mỗi document một delta insert)
// rồi tiếp tục nhận delta insert/update/delete từ change stream.
//
// Yêu cầu MongoDB chạy replica set (change stream không hoạt động trên standalone).
package livequery

import (
	"context"
	"sync"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"flora_commerce/internal/logger"
)

// DeltaInsert, DeltaUpdate, DeltaDelete là các loại thay đổi của một live query.
const (
	DeltaInsert = "insert"
	DeltaUpdate = "update"
	DeltaDelete = "delete"
)

// Delta mô tả một thay đổi từ live query.
// Record là document sau thay đổi (nil với delta delete — chỉ còn DocumentID).
type Delta struct {
	Type       string
	Record     bson.Raw
	DocumentID interface{} // _id của document, luôn có kể cả khi delete
}

// changeEvent là hình dạng document change stream trả về
type changeEvent struct {
	OperationType string   `bson:"operationType"`
	FullDocument  bson.Raw `bson:"fullDocument"`
	DocumentKey   struct {
		ID interface{} `bson:"_id"`
	} `bson:"documentKey"`
}

// Subscription là một live query đang hoạt động.
// Deltas() đóng khi subscription kết thúc (context cancel hoặc stream lỗi).
type Subscription struct {
	deltas chan Delta
	cancel context.CancelFunc
	once   sync.Once
}

// Deltas trả về channel nhận các delta theo thứ tự phát sinh
func (s *Subscription) Deltas() <-chan Delta {
	return s.deltas
}

// Close dừng subscription. Sau khi Close, không delta nào được giao thêm;
// delta đã nằm sẵn trong channel vẫn có thể được đọc nốt.
func (s *Subscription) Close() {
	s.once.Do(s.cancel)
}

// Subscribe mở một live query trên collection: đọc snapshot hiện tại theo filter
// và sort rồi theo dõi change stream. Mỗi document trong snapshot được giao như
// một delta insert trước khi delta thời gian thực bắt đầu.
//
// Stream lỗi hay rớt kết nối thì subscription kết thúc — không retry,
// caller quyết định có subscribe lại hay không.
func Subscribe(ctx context.Context, coll *mongo.Collection, filter bson.M, sort bson.D) (*Subscription, error) {
	subCtx, cancel := context.WithCancel(ctx)

	if filter == nil {
		filter = bson.M{}
	}

	// Mở change stream TRƯỚC khi đọc snapshot để không lọt thay đổi
	// xảy ra giữa hai bước. Thay đổi trong khoảng đó sẽ tới qua stream
	// (có thể trùng với snapshot — consumer dedup theo id).
	pipeline := mongo.Pipeline{
		bson.D{{Key: "$match", Value: bson.M{
			"operationType": bson.M{"$in": []string{"insert", "update", "replace", "delete"}},
		}}},
	}
	streamOpts := options.ChangeStream().SetFullDocument(options.UpdateLookup)
	stream, err := coll.Watch(subCtx, pipeline, streamOpts)
	if err != nil {
		cancel()
		return nil, err
	}

	findOpts := options.Find()
	if len(sort) > 0 {
		findOpts.SetSort(sort)
	}
	cursor, err := coll.Find(subCtx, filter, findOpts)
	if err != nil {
		stream.Close(context.Background())
		cancel()
		return nil, err
	}

	sub := &Subscription{
		deltas: make(chan Delta, 64),
		cancel: cancel,
	}

	go pump(subCtx, coll.Name(), cursor, stream, sub.deltas)

	return sub, nil
}

// pump giao snapshot rồi chuyển tiếp delta từ change stream cho đến khi
// context bị hủy hoặc stream kết thúc.
func pump(ctx context.Context, collName string, cursor *mongo.Cursor, stream *mongo.ChangeStream, out chan<- Delta) {
	log := logger.WithModule("livequery").WithField("collection", collName)

	defer close(out)
	defer stream.Close(context.Background())
	defer cursor.Close(context.Background())

	// Giao snapshot ban đầu
	for cursor.Next(ctx) {
		raw := make(bson.Raw, len(cursor.Current))
		copy(raw, cursor.Current)

		var id interface{}
		if v, err := raw.LookupErr("_id"); err == nil {
			// Chuẩn hóa về primitive.ObjectID như phía change stream
			if oid, ok := v.ObjectIDOK(); ok {
				id = oid
			} else {
				id = v
			}
		}

		select {
		case out <- Delta{Type: DeltaInsert, Record: raw, DocumentID: id}:
		case <-ctx.Done():
			return
		}
	}
	if err := cursor.Err(); err != nil && ctx.Err() == nil {
		log.WithError(err).Error("Lỗi đọc snapshot ban đầu, dừng subscription")
		return
	}

	// Chuyển tiếp delta thời gian thực
	for stream.Next(ctx) {
		var ev changeEvent
		if err := stream.Decode(&ev); err != nil {
			log.WithError(err).Warn("Không decode được change event, bỏ qua")
			continue
		}

		delta := Delta{DocumentID: ev.DocumentKey.ID}
		switch ev.OperationType {
		case "insert":
			delta.Type = DeltaInsert
			delta.Record = ev.FullDocument
		case "update", "replace":
			delta.Type = DeltaUpdate
			delta.Record = ev.FullDocument
		case "delete":
			delta.Type = DeltaDelete
		default:
			continue
		}

		select {
		case out <- delta:
		case <-ctx.Done():
			return
		}
	}

	// Stream kết thúc: ghi log nếu không phải do chủ động hủy.
	// Không retry — subscription treo thì đơn giản là không còn delta nào tới.
	if err := stream.Err(); err != nil && ctx.Err() == nil {
		log.WithError(err).Error("Change stream kết thúc vì lỗi, subscription dừng")
	}
}
