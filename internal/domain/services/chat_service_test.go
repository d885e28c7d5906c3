package services

import (
	"errors"
	"testing"
)

func TestSendMessagePersistsAndBroadcasts(t *testing.T) {
	db := newTestDB(t)
	notifier := newFakeNotifier()
	svc := NewChatService(db, testConfig(), notifier)
	sender := seedEmployee(t, db, "EMP001", "secret123")

	msg, err := svc.SendMessage(&ChatMessageInput{Room: "general", Body: "大家好"}, sender.ID)
	if err != nil {
		t.Fatalf("发送消息失败: %v", err)
	}
	if msg.ID == 0 || msg.Room != "general" || msg.SenderID != sender.ID {
		t.Errorf("消息落库字段错误: %+v", msg)
	}

	published := notifier.chats["general"]
	if len(published) != 1 {
		t.Fatalf("应广播 1 条消息，实际 %d", len(published))
	}
	payload, ok := published[0].(ChatMessagePayload)
	if !ok {
		t.Fatalf("广播载荷类型错误: %T", published[0])
	}
	if payload.ID != msg.ID || payload.SenderName != sender.Name || payload.Body != "大家好" {
		t.Errorf("广播载荷内容错误: %+v", payload)
	}
}

func TestSendMessageToleratesBroadcastFailure(t *testing.T) {
	db := newTestDB(t)
	notifier := newFakeNotifier()
	notifier.publishErr = errors.New("mqtt broker unreachable")
	svc := NewChatService(db, testConfig(), notifier)
	sender := seedEmployee(t, db, "EMP001", "secret123")

	// 广播失败不影响消息归档
	msg, err := svc.SendMessage(&ChatMessageInput{Room: "general", Body: "还在吗"}, sender.ID)
	if err != nil {
		t.Fatalf("广播失败不应使发送失败: %v", err)
	}

	history, err := svc.GetMessages("general", 10, 0)
	if err != nil {
		t.Fatalf("读取历史失败: %v", err)
	}
	if len(history) != 1 || history[0].ID != msg.ID {
		t.Errorf("消息应已归档: %+v", history)
	}
}

func TestGetMessagesPagination(t *testing.T) {
	db := newTestDB(t)
	svc := NewChatService(db, testConfig(), newFakeNotifier())
	sender := seedEmployee(t, db, "EMP001", "secret123")

	var ids []uint
	for i := 0; i < 5; i++ {
		msg, err := svc.SendMessage(&ChatMessageInput{Room: "general", Body: "msg"}, sender.ID)
		if err != nil {
			t.Fatalf("发送消息失败: %v", err)
		}
		ids = append(ids, msg.ID)
	}
	// 其他房间的消息不应串台
	if _, err := svc.SendMessage(&ChatMessageInput{Room: "hr-only", Body: "private"}, sender.ID); err != nil {
		t.Fatalf("发送消息失败: %v", err)
	}

	latest, err := svc.GetMessages("general", 2, 0)
	if err != nil {
		t.Fatalf("读取历史失败: %v", err)
	}
	if len(latest) != 2 || latest[0].ID != ids[4] || latest[1].ID != ids[3] {
		t.Errorf("应返回最新 2 条（新在前）: %+v", latest)
	}

	older, err := svc.GetMessages("general", 10, ids[3])
	if err != nil {
		t.Fatalf("读取历史失败: %v", err)
	}
	if len(older) != 3 || older[0].ID != ids[2] {
		t.Errorf("before_id 翻页结果错误: %+v", older)
	}

	rooms, err := svc.GetRooms()
	if err != nil {
		t.Fatalf("获取房间列表失败: %v", err)
	}
	if len(rooms) != 2 {
		t.Errorf("应有 2 个房间，实际 %v", rooms)
	}
}
