package server

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	pb "github.com/dmitrijs2005/bookhub/internal/proto"
	"github.com/dmitrijs2005/bookhub/internal/server/config"
	gs "github.com/dmitrijs2005/bookhub/internal/server/grpc"
	"github.com/dmitrijs2005/bookhub/internal/server/httpserver"
	"github.com/go-stomp/stomp/v3/frame"
	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/credentials/insecure"
	"google.golang.org/grpc/status"
	"google.golang.org/grpc/test/bufconn"
)

func testConfig() *config.Config {
	c := &config.Config{}
	c.LoadDefaults()
	c.EndpointAddrGRPC = "127.0.0.1:0"
	c.EndpointAddrHTTP = "127.0.0.1:0"
	c.LogLevel = "error"
	return c
}

func TestNewApp_RejectsInvalidConfig(t *testing.T) {
	c := testConfig()
	c.StorageType = "redis"

	app, err := NewApp(context.Background(), c)
	require.Error(t, err)
	assert.Nil(t, app)
}

func TestNewApp_MemoryStorage(t *testing.T) {
	app, err := NewApp(context.Background(), testConfig())
	require.NoError(t, err)
	require.NotNil(t, app.books)

	rt := app.routes()
	assert.NotNil(t, rt.GraphQL)
	assert.NotNil(t, rt.SOAP)
	assert.NotNil(t, rt.STOMP)
	assert.NotNil(t, rt.RawFrame)
}

func TestRun_StopsWhenContextCancelled(t *testing.T) {
	app, err := NewApp(context.Background(), testConfig())
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		app.Run(ctx)
		close(done)
	}()

	time.Sleep(50 * time.Millisecond)
	cancel()

	select {
	case <-done:
	case <-time.After(5 * time.Second):
		t.Fatal("Run did not return after cancel")
	}
}

// testEndpoints serves every adapter of one App: HTTP ones on an httptest
// server and gRPC on an in-memory listener.
type testEndpoints struct {
	http *httptest.Server
	grpc pb.BookServiceClient
}

func startEndpoints(t *testing.T) testEndpoints {
	t.Helper()
	app, err := NewApp(context.Background(), testConfig())
	require.NoError(t, err)
	t.Cleanup(func() { app.shutdown(context.Background()) })

	srv := httptest.NewServer(httpserver.NewRouter(app.routes(), app.metrics))
	t.Cleanup(srv.Close)

	lis := bufconn.Listen(1 << 20)
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		defer close(done)
		_ = gs.NewGRPCServer("", app.logger, app.books, app.metrics).Serve(ctx, lis)
	}()
	t.Cleanup(func() {
		cancel()
		<-done
	})

	conn, err := grpc.NewClient("passthrough:///bufnet",
		grpc.WithContextDialer(func(ctx context.Context, _ string) (net.Conn, error) {
			return lis.DialContext(ctx)
		}),
		grpc.WithTransportCredentials(insecure.NewCredentials()),
	)
	require.NoError(t, err)
	t.Cleanup(func() { _ = conn.Close() })

	return testEndpoints{http: srv, grpc: pb.NewBookServiceClient(conn)}
}

func (e testEndpoints) dialWS(t *testing.T, path string) *websocket.Conn {
	t.Helper()
	conn, resp, err := websocket.DefaultDialer.Dial("ws"+strings.TrimPrefix(e.http.URL, "http")+path, nil)
	require.NoError(t, err)
	_ = resp.Body.Close()
	t.Cleanup(func() { _ = conn.Close() })
	require.NoError(t, conn.SetReadDeadline(time.Now().Add(5*time.Second)))
	return conn
}

func (e testEndpoints) post(t *testing.T, path, contentType, body string) (int, string) {
	t.Helper()
	resp, err := http.Post(e.http.URL+path, contentType, strings.NewReader(body))
	require.NoError(t, err)
	defer resp.Body.Close()
	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return resp.StatusCode, string(raw)
}

func (e testEndpoints) soap(t *testing.T, payload string) (int, string) {
	t.Helper()
	return e.post(t, httpserver.PathSOAP, "text/xml",
		`<soapenv:Envelope xmlns:soapenv="http://schemas.xmlsoap.org/soap/envelope/" xmlns:bk="http://www.isi.com/books">`+
			`<soapenv:Body>`+payload+`</soapenv:Body></soapenv:Envelope>`)
}

func (e testEndpoints) graphqlBook(t *testing.T, id string) json.RawMessage {
	t.Helper()
	body, err := json.Marshal(map[string]any{
		"query":     `query($id: ID!) { book(id: $id) { id title publicationDate } }`,
		"variables": map[string]any{"id": id},
	})
	require.NoError(t, err)

	code, raw := e.post(t, httpserver.PathGraphQL, "application/json", string(body))
	require.Equal(t, http.StatusOK, code, raw)

	var resp struct {
		Data   struct{ Book json.RawMessage }
		Errors []json.RawMessage
	}
	require.NoError(t, json.Unmarshal([]byte(raw), &resp))
	require.Empty(t, resp.Errors)
	return resp.Data.Book
}

type stompConn struct {
	t    *testing.T
	conn *websocket.Conn
}

func (c stompConn) send(f *frame.Frame) {
	c.t.Helper()
	w, err := c.conn.NextWriter(websocket.TextMessage)
	require.NoError(c.t, err)
	require.NoError(c.t, frame.NewWriter(w).Write(f))
	require.NoError(c.t, w.Close())
}

func (c stompConn) read() *frame.Frame {
	c.t.Helper()
	_, data, err := c.conn.ReadMessage()
	require.NoError(c.t, err)
	f, err := frame.NewReader(bytes.NewReader(data)).Read()
	require.NoError(c.t, err)
	require.NotNil(c.t, f)
	return f
}

// getOverSTOMP asks for one book over /app/book/get and returns the reply
// published on /topic/book.
func (c stompConn) get(id int) map[string]any {
	c.t.Helper()
	f := frame.New(frame.SEND, frame.Destination, "/app/book/get", frame.ContentType, "application/json")
	f.Body, _ = json.Marshal(map[string]int{"id": id})
	c.send(f)

	msg := c.read()
	require.Equal(c.t, frame.MESSAGE, msg.Command)
	require.Equal(c.t, "/topic/book", msg.Header.Get(frame.Destination))
	var out map[string]any
	require.NoError(c.t, json.Unmarshal(msg.Body, &out))
	return out
}

func (e testEndpoints) connectSTOMP(t *testing.T) stompConn {
	t.Helper()
	c := stompConn{t: t, conn: e.dialWS(t, httpserver.PathSTOMP)}
	c.send(frame.New(frame.CONNECT, frame.AcceptVersion, "1.2", frame.Host, "localhost"))
	require.Equal(t, frame.CONNECTED, c.read().Command)

	c.send(frame.New(frame.SUBSCRIBE, frame.Id, "0", frame.Destination, "/topic/book", frame.Receipt, "sub-0"))
	require.Equal(t, frame.RECEIPT, c.read().Command)
	return c
}

// Every adapter works on the one BookService: a record created over the raw
// WebSocket and deleted over SOAP is seen, then missed, by all the others.
func TestApp_AdaptersShareOneCatalog(t *testing.T) {
	const date = "2000-02-29"
	e := startEndpoints(t)
	ctx := context.Background()

	ws := e.dialWS(t, httpserver.PathRawFrame)
	var hello map[string]any
	require.NoError(t, ws.ReadJSON(&hello))
	require.NoError(t, ws.WriteJSON(map[string]any{
		"action": "CREATE", "title": "Dune", "price": 19.99, "author": "Herbert", "publicationDate": date,
	}))
	var created map[string]any
	require.NoError(t, ws.ReadJSON(&created))
	require.Equal(t, true, created["success"], created)
	require.Equal(t, 1.0, created["id"])
	assert.Equal(t, date, created["publicationDate"])

	stomp := e.connectSTOMP(t)

	// The stored date reads back verbatim everywhere.
	assert.JSONEq(t, `{"id":"1","title":"Dune","publicationDate":"`+date+`"}`, string(e.graphqlBook(t, "1")))

	got, err := e.grpc.GetBook(ctx, &pb.GetBookRequest{Id: 1})
	require.NoError(t, err)
	assert.Equal(t, "Dune", got.GetTitle())
	assert.Equal(t, date, got.GetPublicationDate())

	code, body := e.soap(t, `<bk:getBookRequest><bk:id>1</bk:id></bk:getBookRequest>`)
	require.Equal(t, http.StatusOK, code, body)
	assert.Contains(t, body, `<publicationDate>`+date+`</publicationDate>`)

	reply := stomp.get(1)
	assert.Equal(t, true, reply["success"])
	assert.Equal(t, date, reply["publicationDate"])

	code, body = e.soap(t, `<bk:deleteBookRequest><bk:id>1</bk:id></bk:deleteBookRequest>`)
	require.Equal(t, http.StatusOK, code, body)
	assert.Contains(t, body, `<success>true</success>`)

	assert.Equal(t, "null", string(e.graphqlBook(t, "1")))

	_, err = e.grpc.GetBook(ctx, &pb.GetBookRequest{Id: 1})
	assert.Equal(t, codes.NotFound, status.Code(err))
	assert.Equal(t, "Book not found with id: 1", status.Convert(err).Message())

	reply = stomp.get(1)
	assert.Equal(t, false, reply["success"])
	assert.Equal(t, "Book not found with id: 1", reply["message"])

	require.NoError(t, ws.WriteJSON(map[string]any{"action": "GET", "id": 1}))
	var missing map[string]any
	require.NoError(t, ws.ReadJSON(&missing))
	assert.Equal(t, false, missing["success"])
	assert.Equal(t, "Book not found with id: 1", missing["message"])
}
