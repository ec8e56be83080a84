package server

import (
	"html/template"
	"net/http"

	"github.com/matzehuels/nameplate/pkg/errors"
)

var pageTemplate = template.Must(template.New("page").Parse(`<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="utf-8">
<title>Nameplates</title>
<style>
  html, body { margin: 0; height: 100%; overflow: hidden; background: #1b1b1b; }
  #board { position: absolute; inset: 0; }
  #board svg { width: 100%; height: 100%; display: block; user-select: none; }
  #board .card { cursor: grab; }
  #editor { position: absolute; left: 50%; top: 50%; transform: translate(-50%, -50%);
            font-size: 32px; padding: 8px 12px; display: none; }
</style>
</head>
<body data-board="{{.BoardID}}">
<div id="board"></div>
<input id="editor" type="text" maxlength="{{.MaxName}}" autocomplete="off">
<script>
(function () {
  const board = document.getElementById("board");
  const editor = document.getElementById("editor");
  let seq = 0;
  let drag = null;

  function post(path, body) {
    return fetch(path, {
      method: "POST",
      headers: {"Content-Type": "application/json"},
      body: body === undefined ? "" : JSON.stringify(body),
    });
  }

  function load(frame) {
    if (frame.seq <= seq) return;
    seq = frame.seq;
    fetch("board.svg").then(r => r.text()).then(svg => { board.innerHTML = svg; });
    if (frame.mode === "editing") {
      if (editor.style.display !== "block") {
        editor.value = frame.scratch || "";
        editor.style.display = "block";
        editor.focus();
      }
    } else {
      editor.style.display = "none";
    }
  }

  function resize() {
    post("resize", {width: window.innerWidth, height: window.innerHeight});
  }

  function connect() {
    const proto = location.protocol === "https:" ? "wss:" : "ws:";
    const ws = new WebSocket(proto + "//" + location.host + location.pathname.replace(/[^/]*$/, "") + "ws");
    ws.onmessage = ev => {
      const msg = JSON.parse(ev.data);
      if (msg.type === "frame") load(msg.frame);
    };
    ws.onclose = () => setTimeout(connect, 2000);
  }

  function cardOf(target) {
    const g = target.closest ? target.closest(".card") : null;
    return g ? parseInt(g.dataset.id, 10) : null;
  }

  board.addEventListener("pointerdown", ev => {
    const id = cardOf(ev.target);
    if (id === null || editor.style.display === "block") return;
    drag = {id: id, x: ev.clientX, y: ev.clientY, el: ev.target.closest(".card"), base: ev.target.closest(".card").getAttribute("transform")};
    board.setPointerCapture(ev.pointerId);
  });
  board.addEventListener("pointermove", ev => {
    if (!drag) return;
    const dx = ev.clientX - drag.x, dy = ev.clientY - drag.y;
    drag.el.setAttribute("transform", "translate(" + dx + " " + dy + ") " + drag.base);
  });
  board.addEventListener("pointerup", ev => {
    if (!drag) return;
    const d = drag;
    drag = null;
    const dx = ev.clientX - d.x, dy = ev.clientY - d.y;
    if (dx === 0 && dy === 0) return;
    post("cards/" + d.id + "/drag", {dx: dx, dy: dy});
  });
  board.addEventListener("dblclick", ev => {
    const id = cardOf(ev.target);
    if (id !== null) post("cards/" + id + "/select");
  });

  editor.addEventListener("input", () => post("edit", {value: editor.value}));
  editor.addEventListener("keydown", ev => {
    if (ev.key === "Enter") post("done");
    if (ev.key === "Escape") post("cancel");
  });
  document.addEventListener("keydown", ev => {
    if (ev.target === editor) return;
    if (ev.key === "r") post("refresh");
  });

  let timer = null;
  window.addEventListener("resize", () => {
    clearTimeout(timer);
    timer = setTimeout(resize, 150);
  });

  connect();
  resize();
})();
</script>
</body>
</html>
`))

type pageData struct {
	BoardID string
	MaxName int
}

func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	data := pageData{BoardID: s.boardID, MaxName: errors.MaxNameLength}
	if err := pageTemplate.Execute(w, data); err != nil {
		s.logger.Error("Render page", "err", err)
	}
}
