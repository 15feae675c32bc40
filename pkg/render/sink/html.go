package sink

import (
	"bytes"
	"text/template"

	"github.com/glasspiral/glasspiral/pkg/scene"
)

// HTMLOption configures HTML rendering via [RenderHTML].
type HTMLOption func(*htmlRenderer)

type htmlRenderer struct {
	title       string
	revealDelay int // milliseconds between reveals
}

// WithHTMLTitle sets the page and overlay title.
func WithHTMLTitle(title string) HTMLOption { return func(r *htmlRenderer) { r.title = title } }

// WithHTMLRevealDelay sets the stagger between building reveals in
// milliseconds. Zero shows the whole scene at once.
func WithHTMLRevealDelay(ms int) HTMLOption {
	return func(r *htmlRenderer) { r.revealDelay = ms }
}

// RenderHTML produces a self-contained viewer page: the scene JSON is
// embedded in the document and fed to a WebGL renderer loaded from a
// CDN. Open the file in a browser; no server is needed.
func RenderHTML(sc scene.Scene, opts ...HTMLOption) ([]byte, error) {
	r := htmlRenderer{
		title:       "glasspiral",
		revealDelay: 120,
	}
	for _, opt := range opts {
		opt(&r)
	}

	sceneJSON, err := RenderJSON(sc, WithJSONCompact())
	if err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	err = viewerTemplate.Execute(&buf, map[string]any{
		"Title":       r.title,
		"SceneJSON":   string(sceneJSON),
		"RevealDelay": r.revealDelay,
	})
	if err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

var viewerTemplate = template.Must(template.New("viewer").Delims("[[", "]]").Parse(`<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="utf-8">
<title>[[.Title]]</title>
<style>
  body { margin: 0; overflow: hidden; background: #0b0e1a; font-family: sans-serif; }
  #hud { position: absolute; top: 12px; left: 12px; color: #e8e8f0; z-index: 10; }
  #hud h1 { font-size: 16px; margin: 0 0 8px; font-weight: normal; }
  #hud button { margin-right: 6px; background: #1d2440; color: #e8e8f0; border: 1px solid #3a4470; padding: 4px 10px; cursor: pointer; }
  #hud button:hover { background: #2a3356; }
</style>
</head>
<body>
<div id="hud">
  <h1>[[.Title]]</h1>
  <button id="replay">Replay Reveal</button>
  <button id="camera">Reset Camera</button>
  <button id="spin">Toggle Rotation</button>
</div>
<script type="application/json" id="scene-data">[[.SceneJSON]]</script>
<script type="importmap">
{ "imports": { "three": "https://cdn.jsdelivr.net/npm/three@0.160.0/build/three.module.js" } }
</script>
<script type="module">
import * as THREE from 'three';

const doc = JSON.parse(document.getElementById('scene-data').textContent);
const data = doc.scene;
const revealDelay = [[.RevealDelay]];

const renderer = new THREE.WebGLRenderer({ antialias: true });
renderer.setSize(window.innerWidth, window.innerHeight);
document.body.appendChild(renderer.domElement);

const world = new THREE.Scene();
world.background = new THREE.Color(0x0b0e1a);
world.add(new THREE.AmbientLight(0xffffff, 0.5));
const sun = new THREE.DirectionalLight(0xfff4d6, 1.2);
sun.position.set(30, 60, 40);
world.add(sun);

const camera = new THREE.PerspectiveCamera(55, window.innerWidth / window.innerHeight, 0.1, 2000);
const totalHeight = data.spiral.height_per_step * data.step_count;
function resetCamera() {
  camera.position.set(0, totalHeight * 0.7, data.spiral.base_radius * 4 + data.step_count * data.spiral.radius_growth * 4);
  camera.lookAt(0, totalHeight / 2, 0);
}
resetCamera();

// A building is a frustum: rectangular base, smaller rectangular top.
function frustumGeometry(d) {
  const hb = d.bottom_width / 2, ht = d.top_width / 2, hd = d.depth / 2, h = d.height;
  const verts = new Float32Array([
    -hb, 0, -hd,  hb, 0, -hd,  hb, 0, hd,  -hb, 0, hd,
    -ht, h, -hd,  ht, h, -hd,  ht, h, hd,  -ht, h, hd,
  ]);
  const idx = [
    0,1,5, 0,5,4,  1,2,6, 1,6,5,  2,3,7, 2,7,6,  3,0,4, 3,4,7,
    4,5,6, 4,6,7,  0,3,2, 0,2,1,
  ];
  const geo = new THREE.BufferGeometry();
  geo.setAttribute('position', new THREE.BufferAttribute(verts, 3));
  geo.setIndex(idx);
  geo.computeVertexNormals();
  return geo;
}

const group = new THREE.Group();
const meshes = [];
for (const b of data.buildings) {
  const mat = new THREE.MeshPhysicalMaterial({
    color: b.color, transparent: true, opacity: 0.75,
    roughness: 0.15, metalness: 0.0, transmission: 0.4,
  });
  const mesh = new THREE.Mesh(frustumGeometry(b.dims), mat);
  mesh.position.set(b.position.x, b.position.y + (b.y_offset || 0), b.position.z);
  mesh.visible = false;
  group.add(mesh);
  meshes.push(mesh);
}
world.add(group);

let revealTimer = null;
function reveal() {
  if (revealTimer) clearInterval(revealTimer);
  meshes.forEach(m => m.visible = false);
  if (revealDelay <= 0) { meshes.forEach(m => m.visible = true); return; }
  let i = 0;
  revealTimer = setInterval(() => {
    if (i >= meshes.length) { clearInterval(revealTimer); return; }
    meshes[i++].visible = true;
  }, revealDelay);
}
reveal();

let spinning = true;
document.getElementById('replay').addEventListener('click', reveal);
document.getElementById('camera').addEventListener('click', resetCamera);
document.getElementById('spin').addEventListener('click', () => spinning = !spinning);

window.addEventListener('resize', () => {
  camera.aspect = window.innerWidth / window.innerHeight;
  camera.updateProjectionMatrix();
  renderer.setSize(window.innerWidth, window.innerHeight);
});

renderer.setAnimationLoop(() => {
  if (spinning) group.rotation.y += 0.002;
  renderer.render(world, camera);
});
</script>
</body>
</html>
`))
